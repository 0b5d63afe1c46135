package parser

import (
	"strconv"
	"strings"
)

// numberWords maps English number words zero through ninety. Two-word
// compounds ("twenty five") are handled by parseNumberWord.
var numberWords = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// parseNumberWord resolves "seven", "twenty five" or "twenty-five" to a
// number. Returns false for anything that is not a number word.
func parseNumberWord(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")

	parts := strings.Fields(s)
	switch len(parts) {
	case 1:
		v, ok := numberWords[parts[0]]
		return v, ok
	case 2:
		tens, ok := numberWords[parts[0]]
		if !ok || tens < 20 || tens > 90 {
			return 0, false
		}
		ones, ok := numberWords[parts[1]]
		if !ok || ones < 1 || ones > 9 {
			return 0, false
		}
		return tens + ones, true
	default:
		return 0, false
	}
}

// parseQuantity resolves a captured quantity token: digits (with optional
// commas and decimals) or English number words.
func parseQuantity(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	cleaned := strings.ReplaceAll(s, ",", "")
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return v, true
	}

	return parseNumberWord(s)
}

// parseMoney resolves a monetary value: optional leading $, commas allowed,
// up to two decimal places.
func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
