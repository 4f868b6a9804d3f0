// Package wire defines the CBOR wire format of the bridge RPC protocol.
//
// Every frame carries one Envelope. The Type field says which of its payload
// fields is set:
//   - Hello / HelloAck: session handshake (client first)
//   - Request: method call from client to bridge
//   - Response: result or error for a request, correlated by ID
//   - Notification: a pushed client event (stream mode only)
//
// # CBOR Integer Keys
//
// Envelope and message structs use integer keys for compactness. Free-form
// values (request params, event payloads) use string keys so they decode to
// map[string]any on the other side.
//
// # Results
//
// Response.Result stays encoded (cbor.RawMessage) until the caller decodes it
// into the concrete type it expects, so typed results such as event.Event
// keep their integer-keyed layout end to end.
package wire
