package convert

import "math"

// ToInt converts a decoded numeric value to int. Floats are accepted only when
// they carry an integral value within the int range.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	}
	return 0, false
}

// floatToInt rejects fractional, non-finite and out-of-range values.
func floatToInt(f float64) (int, bool) {
	if math.Trunc(f) != f || f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}

// ToIntSlice converts a decoded array of numbers to []int.
func ToIntSlice(v any) ([]int, bool) {
	switch arr := v.(type) {
	case []int:
		return arr, true
	case []any:
		out := make([]int, 0, len(arr))
		for _, e := range arr {
			n, ok := ToInt(e)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	}
	return nil, false
}

// ToStringSlice converts a decoded array of strings to []string.
func ToStringSlice(v any) ([]string, bool) {
	switch arr := v.(type) {
	case []string:
		return arr, true
	case []any:
		out := make([]string, 0, len(arr))
		for _, e := range arr {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// ToBool converts a decoded boolean, or a number where non-zero is true.
func ToBool(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	if n, ok := ToInt(v); ok {
		return n != 0, true
	}
	return false, false
}
