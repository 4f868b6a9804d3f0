package rpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rcbridge/rcbridge-go/pkg/log"
	"github.com/rcbridge/rcbridge-go/pkg/registry"
	"github.com/rcbridge/rcbridge-go/pkg/transport"
	"github.com/rcbridge/rcbridge-go/pkg/version"
	"github.com/rcbridge/rcbridge-go/pkg/wire"
)

// DefaultHandshakeTimeout is how long a new connection may take to send Hello.
const DefaultHandshakeTimeout = 10 * time.Second

// SetupFunc installs methods and close hooks on a new session.
type SetupFunc func(s *Session) error

// ServerConfig configures an RPC server.
type ServerConfig struct {
	// Address to listen on.
	Address string

	// Secret enables Hello proof verification when non-empty.
	Secret []byte

	// Name is reported in HelloAck.
	Name string

	QueueSize        int
	MaxMessageSize   uint32
	HandshakeTimeout time.Duration

	Logger  *slog.Logger
	Capture log.Logger

	// Setup installs facades on every session. Required.
	Setup SetupFunc

	// Hooks returns extra registry hooks for a session (optional).
	Hooks func(sessionID string) registry.Hooks

	// Manifest, when set, must be fully covered by the methods Setup
	// installs; Start fails otherwise.
	Manifest *version.Manifest
}

type connState struct {
	session *Session
	timer   *time.Timer
}

// Server accepts bridge clients and gives each its own Session.
type Server struct {
	cfg       ServerConfig
	logger    *slog.Logger
	transport *transport.Server

	mu    sync.Mutex
	conns map[*transport.ServerConn]*connState
}

// NewServer creates a server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Setup == nil {
		return nil, errors.New("rpc: Setup is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Capture == nil {
		cfg.Capture = log.NoopLogger{}
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if cfg.Name == "" {
		cfg.Name = "rcbridge"
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		conns:  make(map[*transport.ServerConn]*connState),
	}
	s.transport = transport.NewServer(transport.ServerConfig{
		Address:        cfg.Address,
		MaxMessageSize: cfg.MaxMessageSize,
		Logger:         cfg.Capture,
		OnConnect:      s.onConnect,
		OnDisconnect:   s.onDisconnect,
		OnMessage:      s.onMessage,
		OnError: func(conn *transport.ServerConn, err error) {
			s.logger.Debug("transport error", "error", err)
		},
	})
	return s, nil
}

// ValidateMethods builds a probe session and checks the methods Setup
// installs against the manifest.
func (s *Server) ValidateMethods(m *version.Manifest) (version.ValidationResult, error) {
	probe := NewSession(discardConn{}, SessionConfig{ID: "probe", Logger: s.logger})
	defer probe.Close()

	if err := s.cfg.Setup(probe); err != nil {
		return version.ValidationResult{}, fmt.Errorf("setup failed: %w", err)
	}
	return m.Validate(probe.Methods()), nil
}

// Start validates the method set (when a manifest is configured) and starts
// listening.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Manifest != nil {
		res, err := s.ValidateMethods(s.cfg.Manifest)
		if err != nil {
			return err
		}
		if !res.Valid {
			return fmt.Errorf("%w: missing %v", ErrManifestMismatch, res.Missing)
		}
		if len(res.Extra) > 0 {
			s.logger.Warn("methods not described by manifest", "methods", res.Extra)
		}
	}
	return s.transport.Start(ctx)
}

// Stop closes all connections and their sessions.
func (s *Server) Stop() error {
	return s.transport.Stop()
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	if a := s.transport.Addr(); a != nil {
		return a.String()
	}
	return ""
}

// SessionCount returns the number of established sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, st := range s.conns {
		if st.session != nil {
			n++
		}
	}
	return n
}

func (s *Server) onConnect(conn *transport.ServerConn) {
	st := &connState{}
	st.timer = time.AfterFunc(s.cfg.HandshakeTimeout, func() {
		s.mu.Lock()
		pending := st.session == nil
		s.mu.Unlock()
		if pending {
			s.logger.Info("handshake timeout", "conn", conn.ConnID(), "remote", conn.RemoteAddr())
			conn.Close()
		}
	})

	s.mu.Lock()
	s.conns[conn] = st
	s.mu.Unlock()
}

func (s *Server) onDisconnect(conn *transport.ServerConn) {
	s.mu.Lock()
	st := s.conns[conn]
	delete(s.conns, conn)
	s.mu.Unlock()

	if st == nil {
		return
	}
	st.timer.Stop()
	if st.session != nil {
		st.session.Close()
		s.logger.Info("session closed", "session", st.session.ID())
	}
}

func (s *Server) onMessage(conn *transport.ServerConn, data []byte) {
	s.mu.Lock()
	st := s.conns[conn]
	s.mu.Unlock()
	if st == nil {
		return
	}

	if st.session != nil {
		st.session.HandleFrame(data)
		return
	}

	sess, err := s.handshake(conn, data)
	if err != nil {
		s.logger.Info("handshake rejected", "conn", conn.ConnID(), "remote", conn.RemoteAddr(), "error", err)
		s.reject(conn, err)
		return
	}

	s.mu.Lock()
	st.session = sess
	s.mu.Unlock()
	st.timer.Stop()
	s.logger.Info("session opened", "session", sess.ID(), "remote", conn.RemoteAddr())
}

func (s *Server) handshake(conn *transport.ServerConn, data []byte) (*Session, error) {
	env, err := wire.DecodeEnvelope(data)
	if err != nil {
		return nil, &wire.Error{Code: wire.CodeInvalidArgument, Message: err.Error()}
	}
	if env.Type != wire.TypeHello {
		return nil, &wire.Error{Code: wire.CodeUnauthenticated, Message: "expected hello"}
	}
	if err := VerifyHello(s.cfg.Secret, env.Hello); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	cfg := SessionConfig{
		ID:         id,
		ConnID:     conn.ConnID(),
		RemoteAddr: conn.RemoteAddr().String(),
		QueueSize:  s.cfg.QueueSize,
		Logger:     s.logger,
		Capture:    s.cfg.Capture,
	}
	if s.cfg.Hooks != nil {
		cfg.Hooks = s.cfg.Hooks(id)
	}
	sess := NewSession(conn, cfg)

	if err := s.cfg.Setup(sess); err != nil {
		sess.Close()
		return nil, fmt.Errorf("%w: %v", wire.ErrInternal, err)
	}

	ack, err := wire.EncodeEnvelope(&wire.Envelope{
		Type:     wire.TypeHelloAck,
		HelloAck: &wire.HelloAck{SessionID: id, Version: version.Current, Server: s.cfg.Name},
	})
	if err == nil {
		err = conn.Send(ack)
	}
	if err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// reject answers a failed handshake with an ID 0 error response and closes
// the connection.
func (s *Server) reject(conn *transport.ServerConn, err error) {
	code := ErrorCode(err)
	msg := err.Error()
	var we *wire.Error
	if errors.As(err, &we) && we.Message != "" {
		msg = we.Message
	}
	if data, encErr := wire.EncodeEnvelope(wire.ResponseEnvelope(wire.NewErrorResponse(0, code, msg))); encErr == nil {
		_ = conn.Send(data)
	}
	conn.Close()
}

type discardConn struct{}

func (discardConn) Send([]byte) error { return nil }
