// Package transport carries bridge envelopes over TCP.
//
// Each frame is a 4-byte big-endian length followed by that many payload bytes
// (one CBOR envelope). Frames are limited to DefaultMaxMessageSize unless
// configured otherwise.
//
// The Server accepts connections, assigns each a UUID connection ID and hands
// every received frame to its OnMessage callback from the connection's read
// goroutine. The Client dials a server and exposes a blocking Receive plus a
// concurrency-safe Send.
//
// Frames are optionally recorded to a capture log (pkg/log) at the transport
// layer.
package transport
