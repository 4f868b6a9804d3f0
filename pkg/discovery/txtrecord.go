package discovery

import (
	"fmt"
	"slices"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeTXT creates the TXT records for info.
func EncodeTXT(info *Info) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyVersion: info.Version,
		TXTKeyAuth:    "0",
	}
	if info.Auth {
		txt[TXTKeyAuth] = "1"
	}
	name := info.Name
	if name == "" {
		name = info.Instance
	}
	txt[TXTKeyInstance] = name
	return txt
}

// DecodeTXT parses the TXT records of a bridge service into a Service with
// the TXT fields set.
func DecodeTXT(txt TXTRecordMap) (*Service, error) {
	ver, ok := txt[TXTKeyVersion]
	if !ok || ver == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}

	svc := &Service{Version: ver, Name: txt[TXTKeyInstance]}
	switch txt[TXTKeyAuth] {
	case "1":
		svc.Auth = true
	case "0", "":
	default:
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidTXTRecord, TXTKeyAuth, txt[TXTKeyAuth])
	}
	return svc, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		k, v, _ := strings.Cut(s, "=")
		if k != "" {
			txt[k] = v
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty instance name", ErrMissingRequired)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
