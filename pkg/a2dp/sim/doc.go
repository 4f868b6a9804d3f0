// Package sim provides simulated Bluetooth platform pieces for the power-test
// receiver: an adapter with bonded devices, an A2DP profile that applies codec
// preferences after a delay, and media players that only track their state.
package sim
