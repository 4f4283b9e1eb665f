package telemetry

import (
	"encoding/json"
	"math"
)

// Sentinel codes the sensor bus uses to mean "no data". They are shared by
// every device family and must be filtered before any conversion runs.
var sentinelValues = map[int64]struct{}{
	-2147482645: {}, // method parameter invalid or sensor unavailable
	-2147482648: {}, // value unavailable or invalid
	65535:       {}, // 0xFFFF
	255:         {}, // unavailable slot in array payloads
	-10011:      {}, // feature not available
	-1:          {},
}

// IsSentinel reports whether v is one of the fixed "no data" codes.
func IsSentinel(v float64) bool {
	if v != math.Trunc(v) {
		return false
	}
	_, ok := sentinelValues[int64(v)]
	return ok
}

// asNumber coerces a decoded JSON value to float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// cleanNumber returns the named field as a canonical value, or nil when the
// field is missing, non-numeric or a sentinel.
func cleanNumber(d DeviceData, key string) *float64 {
	v, ok := asNumber(d[key])
	if !ok || IsSentinel(v) {
		return nil
	}
	return &v
}

// cleanNested reads map-shaped fields like "getUnit(int)" whose sub-keys are
// stringified indexes.
func cleanNested(d DeviceData, key, index string) *float64 {
	sub, ok := d[key].(map[string]any)
	if !ok {
		return nil
	}
	v, ok := asNumber(sub[index])
	if !ok || IsSentinel(v) {
		return nil
	}
	return &v
}

// cleanInt is cleanNumber truncated to int, for discrete fields.
func cleanInt(d DeviceData, key string) *int {
	v := cleanNumber(d, key)
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

// asBool maps an integer code to a flag. Most devices encode true as 1;
// trueValue overrides that for the odd ones out.
func asBool(v *float64, trueValue float64) *bool {
	if v == nil {
		return nil
	}
	b := *v == trueValue
	return &b
}
