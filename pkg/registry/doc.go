// Package registry implements the listener registry and event correlator that
// multiplexes concurrent scanner subscriptions onto one client event stream.
//
// # Handles
//
// Each Kind has its own counter owned by the Registry instance. Handles start
// at 1, are strictly increasing within a kind and are never reused, even when
// a registration fails. Handles of different kinds may coincide; the event
// type prefix keeps event names distinct.
//
// # Correlation
//
// Deliver composes the client event name as
//
//	<event-type><handle><outcome>
//
// e.g. "WifiScannerScan3onResults", and also carries kind, handle and outcome
// as structured fields.
//
// # Lifecycle
//
// A subscription is Active from registration until it is removed by a stop
// request, a terminal failure, or Shutdown. A failure callback removes Scan
// subscriptions only; Change and Bssid subscriptions stay registered after a
// failure and must be stopped explicitly.
//
// Scan subscriptions hold the most recent result batch on the subscription
// record itself, so removing the subscription drops its cached results in the
// same critical section.
//
// # Threading
//
// Factories passed to Register run on the registry's owner goroutine. All
// other methods are safe to call from any goroutine, including platform
// callback goroutines.
package registry
