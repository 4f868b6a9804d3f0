// Package event defines the client-visible events relayed by the bridge and
// the per-session queue that holds them until a client collects them.
//
// Every event carries its correlation triple as structured fields (Kind,
// Handle, Outcome) in addition to the concatenated Name that script clients
// match on, e.g. "WifiScannerScan3onResults".
//
// A Queue works in one of two modes. In pull mode events are buffered (bounded,
// oldest dropped first) and clients read them with Poll or WaitFor. In push
// mode a handler installed with SetPushHandler receives each event as it is
// posted and nothing is buffered.
package event
