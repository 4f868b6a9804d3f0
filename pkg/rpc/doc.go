// Package rpc implements the bridge's request/response protocol on top of
// pkg/transport.
//
// A connection starts with a Hello/HelloAck handshake. When the server has a
// shared secret configured the Hello must carry a proof derived from it (see
// ComputeProof). After the handshake the connection owns a Session: its own
// subscription registry, owner goroutine, event queue and method table.
// Facades install their methods on the session through a SetupFunc.
//
// Requests on one session are served concurrently and answered by ID. Client
// events are buffered in the session queue until the client polls for them,
// or pushed as Notification envelopes once streaming is enabled.
//
// Errors cross the wire as wire.Code values. ErrorCode maps package sentinels
// to codes on the server; the Client returns *wire.Error values that match
// ErrInvalidArgument, ErrNotFound and friends with errors.Is.
package rpc
