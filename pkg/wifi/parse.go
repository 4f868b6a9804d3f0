package wifi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rcbridge/rcbridge-go/pkg/convert"
)

// ErrInvalidArgument is returned for malformed or missing parameters.
var ErrInvalidArgument = errors.New("invalid argument")

// Scan settings keys.
const (
	keyBand             = "band"
	keyChannels         = "channels"
	keyPeriodInMs       = "periodInMs"
	keyReportEvents     = "reportEvents"
	keyNumBssidsPerScan = "numBssidsPerScan"
)

// ParseScanSettingsJSON parses scan settings from a JSON object string.
func ParseScanSettingsJSON(s string) (ScanSettings, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return ScanSettings{}, fmt.Errorf("%w: scan settings: %v", ErrInvalidArgument, err)
	}
	return ParseScanSettings(m)
}

// ParseScanSettings parses scan settings from a decoded map.
func ParseScanSettings(m map[string]any) (ScanSettings, error) {
	var s ScanSettings

	if v, ok := m[keyBand]; ok {
		n, ok := convert.ToInt(v)
		if !ok {
			return ScanSettings{}, invalidField(keyBand, v)
		}
		s.Band = Band(n)
	}

	if v, ok := m[keyChannels]; ok {
		chs, ok := convert.ToIntSlice(v)
		if !ok {
			return ScanSettings{}, invalidField(keyChannels, v)
		}
		s.Channels = chs
	}

	period, err := requiredInt(m, keyPeriodInMs)
	if err != nil {
		return ScanSettings{}, err
	}
	s.PeriodInMs = period

	report, err := requiredInt(m, keyReportEvents)
	if err != nil {
		return ScanSettings{}, err
	}
	s.ReportEvents = report

	if v, ok := m[keyNumBssidsPerScan]; ok {
		n, ok := convert.ToInt(v)
		if !ok {
			return ScanSettings{}, invalidField(keyNumBssidsPerScan, v)
		}
		s.NumBssidsPerScan = n
	}

	return s, nil
}

// ParseChangeSpec parses "<bssid> <baselineRssi> <frequencyHint>". The tracked
// band is baselineRssi ± unchangedSS.
func ParseChangeSpec(spec string, unchangedSS int) (BssidInfo, error) {
	bssid, a, b, err := splitSpec(spec)
	if err != nil {
		return BssidInfo{}, err
	}
	return BssidInfo{
		BSSID:         bssid,
		Low:           a - unchangedSS,
		High:          a + unchangedSS,
		FrequencyHint: b,
	}, nil
}

// ParseChangeSpecs parses every spec with ParseChangeSpec.
func ParseChangeSpecs(specs []string, unchangedSS int) ([]BssidInfo, error) {
	infos := make([]BssidInfo, 0, len(specs))
	for _, spec := range specs {
		info, err := ParseChangeSpec(spec, unchangedSS)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ParseBssidSpec parses "<bssid> <a> <b>" into a band [min(a,b), max(a,b)].
func ParseBssidSpec(spec string) (BssidInfo, error) {
	bssid, a, b, err := splitSpec(spec)
	if err != nil {
		return BssidInfo{}, err
	}
	return BssidInfo{
		BSSID: bssid,
		Low:   min(a, b),
		High:  max(a, b),
	}, nil
}

// ParseBssidSpecs parses every spec with ParseBssidSpec.
func ParseBssidSpecs(specs []string) ([]BssidInfo, error) {
	infos := make([]BssidInfo, 0, len(specs))
	for _, spec := range specs {
		info, err := ParseBssidSpec(spec)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func splitSpec(spec string) (string, int, int, error) {
	tokens := strings.Fields(spec)
	if len(tokens) != 3 {
		return "", 0, 0, fmt.Errorf("%w: bssid info %q: want 3 tokens, got %d", ErrInvalidArgument, spec, len(tokens))
	}
	a, err := strconv.Atoi(tokens[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: bssid info %q: %v", ErrInvalidArgument, spec, err)
	}
	b, err := strconv.Atoi(tokens[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: bssid info %q: %v", ErrInvalidArgument, spec, err)
	}
	return tokens[0], a, b, nil
}

func requiredInt(m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidArgument, key)
	}
	n, ok := convert.ToInt(v)
	if !ok {
		return 0, invalidField(key, v)
	}
	return n, nil
}

func invalidField(key string, v any) error {
	return fmt.Errorf("%w: %s: unexpected value %v (%T)", ErrInvalidArgument, key, v, v)
}
