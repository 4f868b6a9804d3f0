package wifi

// Band selects a predefined set of channels to scan.
type Band int

// Scan bands.
const (
	BandUnspecified Band = 0
	Band24GHz       Band = 1
	Band5GHz        Band = 2
	BandBoth        Band = 3
	Band5GHzDFS     Band = 4
	Band5GHzWithDFS Band = 6
	BandBothWithDFS Band = 7
)

// Report event flags for ScanSettings.ReportEvents.
const (
	ReportAfterBuffer = 0
	ReportEachScan    = 1 << 0
	ReportFullResult  = 1 << 1
	ReportNoBatch     = 1 << 2
)

// ScanSettings configures a periodic background scan.
type ScanSettings struct {
	Band             Band  `json:"band,omitempty"`
	Channels         []int `json:"channels,omitempty"`
	PeriodInMs       int   `json:"periodInMs"`
	ReportEvents     int   `json:"reportEvents"`
	NumBssidsPerScan int   `json:"numBssidsPerScan,omitempty"`
}

// WantsFullResults reports whether per-AP full results were requested.
func (s ScanSettings) WantsFullResults() bool {
	return s.ReportEvents&ReportFullResult != 0
}

// ScanResult describes one access point seen by a scan.
type ScanResult struct {
	SSID         string `cbor:"ssid" json:"ssid"`
	BSSID        string `cbor:"bssid" json:"bssid"`
	Capabilities string `cbor:"capabilities,omitempty" json:"capabilities,omitempty"`
	Level        int    `cbor:"level" json:"level"`
	Frequency    int    `cbor:"frequency" json:"frequency"`

	// Timestamp is the time the AP was last seen, in microseconds since boot.
	Timestamp int64 `cbor:"timestamp" json:"timestamp"`

	// InformationElements holds the raw IEs as a comma separated signed
	// byte string (see package convert).
	InformationElements string `cbor:"informationElements,omitempty" json:"informationElements,omitempty"`
}

// BssidInfo describes one tracked access point and its RSSI band.
type BssidInfo struct {
	BSSID         string `cbor:"bssid" json:"bssid"`
	Low           int    `cbor:"low" json:"low"`
	High          int    `cbor:"high" json:"high"`
	FrequencyHint int    `cbor:"frequencyHint,omitempty" json:"frequencyHint,omitempty"`
}

// ChangeConfig configures wifi change tracking.
type ChangeConfig struct {
	RssiSampleSize           int
	LostApSampleSize         int
	UnchangedSampleSize      int
	MinApsBreachingThreshold int
	PeriodInMs               int
	Infos                    []BssidInfo
}
