package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidByte is returned when a byte string element is not a signed byte.
var ErrInvalidByte = errors.New("invalid byte value")

// StringToBytes parses a comma separated list of signed bytes ("1,2,-3").
// Whitespace around elements is ignored. The empty string yields an empty slice.
func StringToBytes(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}

	parts := strings.Split(s, ",")
	out := make([]byte, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d %q", ErrInvalidByte, i, p)
		}
		out[i] = byte(int8(v))
	}
	return out, nil
}

// BytesToString formats b as a comma separated list of signed bytes.
// A nil slice yields the empty string.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(int8(v))))
	}
	return sb.String()
}
