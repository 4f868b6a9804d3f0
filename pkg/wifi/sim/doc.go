// Package sim provides a simulated wifi.Scanner for the bridge server and for
// tests. It emits synthetic scan results for a configured set of access points
// whose signal levels drift randomly on every tick.
package sim
