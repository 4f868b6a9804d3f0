// Package discovery advertises and finds bridge servers over mDNS.
//
// A server registers one "_rcbridge._tcp" service instance in the "local"
// domain. Its TXT records carry:
//
//	ver   protocol version (e.g. "1.0")
//	auth  "1" when the handshake requires a shared secret, else "0"
//	inst  human readable server name
//
// Clients browse for the service type and connect to the advertised host and
// port. Addresses seen on several interfaces are merged into one Service.
package discovery
