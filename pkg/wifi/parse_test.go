package wifi

import (
	"errors"
	"testing"
)

func TestParseScanSettings(t *testing.T) {
	m := map[string]any{
		"band":             uint64(2),
		"channels":         []any{uint64(2412), uint64(2437)},
		"periodInMs":       uint64(10000),
		"reportEvents":     uint64(ReportEachScan | ReportFullResult),
		"numBssidsPerScan": int64(8),
	}

	s, err := ParseScanSettings(m)
	if err != nil {
		t.Fatalf("ParseScanSettings() error = %v", err)
	}
	if s.Band != Band5GHz {
		t.Errorf("Band = %d, want %d", s.Band, Band5GHz)
	}
	if len(s.Channels) != 2 || s.Channels[0] != 2412 || s.Channels[1] != 2437 {
		t.Errorf("Channels = %v, want [2412 2437]", s.Channels)
	}
	if s.PeriodInMs != 10000 {
		t.Errorf("PeriodInMs = %d, want 10000", s.PeriodInMs)
	}
	if !s.WantsFullResults() {
		t.Error("WantsFullResults() = false, want true")
	}
	if s.NumBssidsPerScan != 8 {
		t.Errorf("NumBssidsPerScan = %d, want 8", s.NumBssidsPerScan)
	}
}

func TestParseScanSettingsOptionalFields(t *testing.T) {
	s, err := ParseScanSettings(map[string]any{"periodInMs": 5000, "reportEvents": 0})
	if err != nil {
		t.Fatalf("ParseScanSettings() error = %v", err)
	}
	if s.Band != BandUnspecified || s.Channels != nil || s.NumBssidsPerScan != 0 {
		t.Errorf("optional fields = %+v, want zero values", s)
	}
}

func TestParseScanSettingsMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
	}{
		{"no period", map[string]any{"reportEvents": 1}},
		{"no report events", map[string]any{"periodInMs": 1000}},
		{"empty", map[string]any{}},
		{"period wrong type", map[string]any{"periodInMs": "fast", "reportEvents": 1}},
		{"channels wrong type", map[string]any{"periodInMs": 1, "reportEvents": 1, "channels": "2412"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScanSettings(tt.m); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseScanSettings() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestParseScanSettingsJSON(t *testing.T) {
	s, err := ParseScanSettingsJSON(`{"band":1,"periodInMs":20000,"reportEvents":1}`)
	if err != nil {
		t.Fatalf("ParseScanSettingsJSON() error = %v", err)
	}
	if s.Band != Band24GHz || s.PeriodInMs != 20000 || s.ReportEvents != 1 {
		t.Errorf("ParseScanSettingsJSON() = %+v", s)
	}

	if _, err := ParseScanSettingsJSON(`{"band":`); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("malformed JSON error = %v, want ErrInvalidArgument", err)
	}
	if _, err := ParseScanSettingsJSON(`{"band":1}`); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("missing fields error = %v, want ErrInvalidArgument", err)
	}
}

func TestParseChangeSpec(t *testing.T) {
	info, err := ParseChangeSpec("AA:BB 20 2412", 5)
	if err != nil {
		t.Fatalf("ParseChangeSpec() error = %v", err)
	}
	want := BssidInfo{BSSID: "AA:BB", Low: 15, High: 25, FrequencyHint: 2412}
	if info != want {
		t.Errorf("ParseChangeSpec() = %+v, want %+v", info, want)
	}

	info, err = ParseChangeSpec("11:22:33:44:55:66 -60 5180", 3)
	if err != nil {
		t.Fatalf("ParseChangeSpec() error = %v", err)
	}
	if info.Low != -63 || info.High != -57 {
		t.Errorf("band = [%d, %d], want [-63, -57]", info.Low, info.High)
	}
}

func TestParseBssidSpecNormalizesOrder(t *testing.T) {
	tests := []struct {
		spec      string
		low, high int
	}{
		{"AA:BB 10 5", 5, 10},
		{"AA:BB 5 10", 5, 10},
		{"AA:BB -40 -80", -80, -40},
		{"AA:BB 7 7", 7, 7},
	}

	for _, tt := range tests {
		info, err := ParseBssidSpec(tt.spec)
		if err != nil {
			t.Fatalf("ParseBssidSpec(%q) error = %v", tt.spec, err)
		}
		if info.BSSID != "AA:BB" || info.Low != tt.low || info.High != tt.high {
			t.Errorf("ParseBssidSpec(%q) = %+v, want low=%d high=%d", tt.spec, info, tt.low, tt.high)
		}
	}
}

func TestParseSpecInvalid(t *testing.T) {
	specs := []string{
		"",
		"AA:BB",
		"AA:BB 10",
		"AA:BB 10 5 1",
		"AA:BB ten 5",
		"AA:BB 10 five",
	}

	for _, spec := range specs {
		if _, err := ParseBssidSpec(spec); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseBssidSpec(%q) error = %v, want ErrInvalidArgument", spec, err)
		}
		if _, err := ParseChangeSpec(spec, 5); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseChangeSpec(%q) error = %v, want ErrInvalidArgument", spec, err)
		}
	}
}

func TestParseSpecsStopsAtFirstError(t *testing.T) {
	if _, err := ParseBssidSpecs([]string{"AA 1 2", "BB 1"}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseBssidSpecs() error = %v, want ErrInvalidArgument", err)
	}

	infos, err := ParseChangeSpecs([]string{"AA 1 2412", "BB -50 5180"}, 2)
	if err != nil {
		t.Fatalf("ParseChangeSpecs() error = %v", err)
	}
	if len(infos) != 2 || infos[1].BSSID != "BB" || infos[1].Low != -52 {
		t.Errorf("ParseChangeSpecs() = %+v", infos)
	}
}
