package record

import (
	"fmt"
	"strings"
)

// Compare orders two heterogeneous cell values for sorting.
// Nulls coerce to the empty string, string comparison is case-insensitive,
// numbers and booleans use natural ordering. Descending negates the
// ascending result rather than taking a separate path, so toggling the
// direction twice restores the original relative order for equal keys.
func Compare(a, b interface{}, descending bool) int {
	result := compareAscending(a, b)
	if descending {
		return -result
	}
	return result
}

func compareAscending(a, b interface{}) int {
	af, aNum := toNumber(a)
	bf, bNum := toNumber(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case !ab && bb:
				return -1
			case ab && !bb:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(foldString(a), foldString(b))
}

func toNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

func foldString(v interface{}) string {
	if v == nil {
		return ""
	}
	return strings.ToLower(Stringify(v))
}

func stringifyFallback(v interface{}) string {
	return fmt.Sprintf("%v", v)
}
