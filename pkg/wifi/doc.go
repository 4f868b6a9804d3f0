// Package wifi defines the scanner domain: scan settings, scan results, the
// BSSID tracking descriptors, the listener callbacks a platform scanner invokes,
// and the Scanner interface the bridge drives.
//
// The parsing helpers turn client supplied parameters into these types:
//
//   - ParseScanSettings accepts a decoded map or a JSON object string;
//     periodInMs and reportEvents are required.
//   - ParseChangeSpec reads "<bssid> <baselineRssi> <frequencyHint>" and
//     tracks the band baselineRssi ± unchangedSS.
//   - ParseBssidSpec reads "<bssid> <a> <b>" and normalizes the band to
//     [min(a,b), max(a,b)].
//
// All parse failures wrap ErrInvalidArgument.
package wifi
