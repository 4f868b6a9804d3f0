package rpc

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/rcbridge/rcbridge-go/pkg/version"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

const (
	// NonceSize is the size of the Hello nonce.
	NonceSize = 16

	helloInfo  = "rcbridge hello"
	proofLabel = "rcbridge-hello"
)

// DeriveHelloKey derives the per-connection proof key from the shared secret
// and the client nonce.
func DeriveHelloKey(secret, nonce []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, secret, nonce, []byte(helloInfo))
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive hello key: %w", err)
	}
	return key, nil
}

// ComputeProof returns HMAC-SHA256(DeriveHelloKey(secret, nonce),
// "rcbridge-hello" || ver).
func ComputeProof(secret, nonce []byte, ver string) ([]byte, error) {
	key, err := DeriveHelloKey(secret, nonce)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(proofLabel))
	mac.Write([]byte(ver))
	return mac.Sum(nil), nil
}

// NewHello builds a client Hello for the current protocol version. With an
// empty secret no nonce or proof is attached.
func NewHello(secret []byte, client string) (*wire.Hello, error) {
	h := &wire.Hello{Version: version.Current, Client: client}
	if len(secret) == 0 {
		return h, nil
	}

	h.Nonce = make([]byte, NonceSize)
	if _, err := rand.Read(h.Nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	proof, err := ComputeProof(secret, h.Nonce, h.Version)
	if err != nil {
		return nil, err
	}
	h.Proof = proof
	return h, nil
}

// VerifyHello checks the client's version and, when secret is set, its proof.
func VerifyHello(secret []byte, h *wire.Hello) error {
	if _, err := version.CheckPeer(h.Version); err != nil {
		return &wire.Error{Code: wire.CodeInvalidArgument, Message: err.Error()}
	}
	if len(secret) == 0 {
		return nil
	}

	if len(h.Nonce) < NonceSize || len(h.Proof) == 0 {
		return &wire.Error{Code: wire.CodeUnauthenticated, Message: "missing proof"}
	}
	want, err := ComputeProof(secret, h.Nonce, h.Version)
	if err != nil {
		return err
	}
	if !hmac.Equal(want, h.Proof) {
		return &wire.Error{Code: wire.CodeUnauthenticated, Message: "bad proof"}
	}
	return nil
}
