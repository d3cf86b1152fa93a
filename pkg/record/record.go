// Package record defines the generic row type every dashboard dataset is
// made of, plus the value normalization used for sorting, filtering and
// display. Records come straight out of the collected tenant snapshot and
// are read-only: nothing in this package or its callers mutates one.
package record

import (
	"strconv"
	"strings"
)

// Record represents one row of collected tenant data (a user, a device, …)
type Record map[string]interface{}

// Resolve looks up a dot-separated path ("user.department") and returns the
// value, or nil when any segment is missing or not a nested object.
func (r Record) Resolve(path string) interface{} {
	if r == nil {
		return nil
	}
	if !strings.Contains(path, ".") {
		return r[path]
	}

	var current interface{} = map[string]interface{}(r)
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			if rec, isRec := current.(Record); isRec {
				obj = map[string]interface{}(rec)
			} else {
				return nil
			}
		}
		current, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return current
}

// GetString returns the value at key as a string, or "" if absent or not
// a string.
func (r Record) GetString(key string) string {
	if val, ok := r[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// GetBool returns the value at key coerced to a boolean. Handles bool,
// numeric and string representations ("1", "true", "yes", "on").
func (r Record) GetBool(key string) bool {
	return Truthy(r[key])
}

// Truthy coerces an arbitrary cell value to a boolean using the same
// rules as GetBool.
func Truthy(val interface{}) bool {
	if val == nil {
		return false
	}
	switch v := val.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return parseBoolString(v)
	default:
		return false
	}
}

func parseBoolString(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "1" || lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if b, err := strconv.ParseBool(lower); err == nil {
		return b
	}
	return false
}

// Stringify normalizes a scalar cell value for filtering and comparison.
// nil becomes "", floats carrying integral values drop the fraction
// ("5" rather than "5.000000"), booleans become "true"/"false".
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return stringifyFallback(val)
	}
}

// Elements returns the cell value as a flat list of stringified scalars:
// arrays element-wise, scalars as a single element, nil as an empty list.
func Elements(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, Stringify(item))
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return []string{Stringify(val)}
	}
}
