// Package facade exposes the bridge's platform facades as RPC methods.
//
// Each client session gets its own facades, bound to the session's
// subscription registry and event queue:
//
//   - WifiScanner: background scans, change tracking and bssid tracking.
//     Platform callbacks become client events named
//     "<eventType><handle><outcome>".
//   - Events: polling, waiting for and streaming queued events.
//   - PowerTest: the A2DP power-test receiver, shared by all sessions.
//   - Catalog: the method list and per-method descriptions.
//
// Setup wires all of them into an rpc.Session.
package facade
