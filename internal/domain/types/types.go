// Package types contains loose-value coercions shared by the upstream adapters.
//
// Upstream fields drift between string and number across seasons ("1" vs 1),
// so every numeric read goes through Int or Float with a caller-chosen default.
package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Int coerces v to an int, returning def when v is missing or not numeric.
// Strings are trimmed; fractional values truncate toward zero.
func Int(v any, def int) int {
	switch x := v.(type) {
	case nil:
		return def
	case int:
		return x
	case int64:
		return int(x)
	case int32:
		return int(x)
	case float64:
		return truncate(x, def)
	case float32:
		return truncate(float64(x), def)
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return parseInt(string(x), def)
	case string:
		return parseInt(x, def)
	default:
		return def
	}
}

// Float coerces v to a float64, returning def when v is missing or not numeric.
func Float(v any, def float64) float64 {
	switch x := v.(type) {
	case nil:
		return def
	case float64:
		return finite(x, def)
	case float32:
		return finite(float64(x), def)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case json.Number:
		return parseFloat(string(x), def)
	case string:
		return parseFloat(x, def)
	default:
		return def
	}
}

// Text renders v as a string; nil and unsupported kinds become "".
func Text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return truncate(f, def)
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return finite(f, def)
}

func truncate(f float64, def int) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return def
	}
	return int(f)
}

func finite(f float64, def float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
