package model

import (
	"strconv"
	"strings"
)

// SanitizePrice coerces an externally supplied price-like value. Numbers pass
// through; strings have currency symbols and commas stripped and are parsed.
// Anything that still fails to parse (e.g. "TBD") becomes nil, so "no price
// yet" stays distinguishable from "confirmed zero cost".
func SanitizePrice(v any) *float64 {
	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		return &value
	case float32:
		f := float64(value)
		return &f
	case int:
		f := float64(value)
		return &f
	case int64:
		f := float64(value)
		return &f
	case string:
		s := strings.TrimSpace(value)
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
