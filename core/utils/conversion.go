package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts query parameters and decoded JSON numbers to int.
// Anything it cannot parse becomes 0.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		i, _ := v.Int64()
		return int(i)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		return ToInt(string(v))
	default:
		return 0
	}
}

// ToString converts an identifier decoded from JSON to its string form.
// Whole numbers keep their plain decimal form ("1000000", not "1e+06").
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool interprets "1" and "true" (any case) as true.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case string:
		v = strings.TrimSpace(v)
		return v == "1" || strings.EqualFold(v, "true")
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}
