package parser

import "strings"

// unitSynonyms maps common unit spellings to canonical short codes. Loaded
// once; read-only after init.
var unitSynonyms = map[string]string{
	"sf":          "SF",
	"sqft":        "SF",
	"sq ft":       "SF",
	"sq. ft.":     "SF",
	"square foot": "SF",
	"square feet": "SF",

	"sy":           "SY",
	"square yard":  "SY",
	"square yards": "SY",

	"lf":          "LF",
	"lin ft":      "LF",
	"linear foot": "LF",
	"linear feet": "LF",

	"ea":     "EA",
	"each":   "EA",
	"pc":     "EA",
	"pcs":    "EA",
	"piece":  "EA",
	"pieces": "EA",
	"count":  "EA",

	"cy":          "CY",
	"cubic yard":  "CY",
	"cubic yards": "CY",
	"yard":        "CY",
	"yards":       "CY",

	"bf":         "BF",
	"board foot": "BF",
	"board feet": "BF",

	"sq":      "SQ",
	"square":  "SQ",
	"squares": "SQ",

	"hr":    "HR",
	"hrs":   "HR",
	"hour":  "HR",
	"hours": "HR",

	"gal":     "GAL",
	"gallon":  "GAL",
	"gallons": "GAL",

	"sheet":  "SHEET",
	"sheets": "SHEET",
	"sht":    "SHEET",
	"shts":   "SHEET",

	"roll":  "ROLL",
	"rolls": "ROLL",

	"box":   "BOX",
	"boxes": "BOX",

	"lb":     "LB",
	"lbs":    "LB",
	"pound":  "LB",
	"pounds": "LB",

	"ton":  "TON",
	"tons": "TON",
}

// NormalizeUnit maps a unit spelling to its canonical short code,
// case-insensitively. Unrecognized units pass through upper-cased.
func NormalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := unitSynonyms[u]; ok {
		return canonical
	}
	return strings.ToUpper(u)
}
