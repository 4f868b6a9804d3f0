// Package convert holds small value conversions shared by the RPC and facade
// layers: comma-separated signed byte strings and the loose numeric types that
// arrive in decoded CBOR or JSON parameters.
package convert
