package wire

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rcbridge/rcbridge-go/pkg/convert"
)

// ErrInvalidParam is returned when a parameter is missing or has the wrong type.
var ErrInvalidParam = errors.New("invalid parameter")

// Params holds named request parameters as decoded from CBOR.
type Params map[string]any

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Int returns a required integer parameter.
func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, missing(key)
	}
	n, ok := convert.ToInt(v)
	if !ok {
		return 0, wrongType(key, "integer", v)
	}
	return n, nil
}

// IntOr returns an optional integer parameter, or def if absent.
func (p Params) IntOr(key string, def int) (int, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.Int(key)
}

// String returns a required string parameter.
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", missing(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongType(key, "string", v)
	}
	return s, nil
}

// StringOr returns an optional string parameter, or def if absent.
func (p Params) StringOr(key, def string) (string, error) {
	if !p.Has(key) {
		return def, nil
	}
	return p.String(key)
}

// Bool returns an optional boolean parameter, or def if absent.
func (p Params) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, ok := convert.ToBool(v)
	if !ok {
		return false, wrongType(key, "boolean", v)
	}
	return b, nil
}

// Strings returns a required string array parameter.
func (p Params) Strings(key string) ([]string, error) {
	v, ok := p[key]
	if !ok {
		return nil, missing(key)
	}
	s, ok := convert.ToStringSlice(v)
	if !ok {
		return nil, wrongType(key, "string array", v)
	}
	return s, nil
}

// Bytes returns a required byte parameter given either as a CBOR byte string
// or as a comma separated signed byte string.
func (p Params) Bytes(key string) ([]byte, error) {
	v, ok := p[key]
	if !ok {
		return nil, missing(key)
	}
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		out, err := convert.StringToBytes(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParam, key, err)
		}
		return out, nil
	}
	return nil, wrongType(key, "bytes", v)
}

// Object returns a required map parameter. A JSON object string is accepted
// and decoded.
func (p Params) Object(key string) (map[string]any, error) {
	v, ok := p[key]
	if !ok {
		return nil, missing(key)
	}
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case Params:
		return m, nil
	case string:
		var out map[string]any
		if err := json.Unmarshal([]byte(m), &out); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParam, key, err)
		}
		return out, nil
	}
	return nil, wrongType(key, "object", v)
}

func missing(key string) error {
	return fmt.Errorf("%w: %s is required", ErrInvalidParam, key)
}

func wrongType(key, want string, v any) error {
	return fmt.Errorf("%w: %s: want %s, got %T", ErrInvalidParam, key, want, v)
}
