// Package log provides structured capture logging for the bridge.
//
// This package defines the Logger interface and Event types for capturing
// bridge traffic at multiple layers (transport, RPC, facade). It is separate
// from operational logging (slog): the capture log is a complete
// machine-readable trace of what a client sent, what the bridge answered, and
// which subscription events were relayed.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.CaptureLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.CaptureLogger, _ = log.NewFileLogger("/var/log/rcbridge/bridge.rlog")
//
//	// Both: use MultiLogger
//	cfg.CaptureLogger = log.NewMultiLogger(adapter, fileLogger)
//
// # Event Types
//
//   - Transport: raw frame bytes (FrameEvent)
//   - RPC: decoded envelopes (MessageEvent)
//   - Facade: subscription lifecycle (StateChangeEvent) and relayed client
//     events (DeliveryEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events (.rlog). The rcbridge-log
// tool provides viewing, statistics and JSON export.
package log
