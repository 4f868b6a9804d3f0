// Package owner provides a single goroutine that owns a resource which must
// not be touched from arbitrary goroutines.
//
// Work is handed to the owner over a request channel and the caller blocks
// until the owner has run it and sent the result back. This makes thread
// affinity explicit: code that constructs or subscribes platform listeners
// runs through an Owner instead of on whatever goroutine happened to receive
// the command.
//
// # Blocking semantics
//
// The context passed to Do only bounds the wait for the owner to accept the
// request. Once accepted, Do waits for the function to finish regardless of
// cancellation, so a registration is never half-observed by its caller.
package owner
