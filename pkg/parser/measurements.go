package parser

import (
	"regexp"
	"strings"
)

// measurementPattern binds one measurement variable to the regular patterns
// that can capture it. The first matching pattern for a variable wins; later
// patterns never overwrite an already-bound variable.
type measurementPattern struct {
	variable string
	patterns []*regexp.Regexp
}

var measurementPatterns = []measurementPattern{
	{
		variable: "wall_lf",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`walls?\s+(?:at\s+|of\s+|:\s*)?(\d+(?:\.\d+)?)\s*(?:lf\b|lin(?:ear)?\s*(?:feet|foot|ft))`),
			regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:lf|linear\s+(?:feet|foot))\s+(?:of\s+)?walls?`),
		},
	},
	{
		variable: "wall_sf",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`walls?\s+(?:at\s+|of\s+|:\s*)?(\d+(?:\.\d+)?)\s*(?:sf\b|sq(?:uare)?\s*(?:feet|foot|ft))`),
			regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:sf|square\s+feet)\s+(?:of\s+)?walls?`),
		},
	},
	{
		variable: "ceiling_sf",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`ceilings?\s+(?:at\s+|of\s+|:\s*)?(\d+(?:\.\d+)?)\s*(?:sf\b|sq(?:uare)?\s*(?:feet|foot|ft))`),
			regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:sf|square\s+feet)\s+(?:of\s+)?ceilings?`),
		},
	},
	{
		variable: "ceiling_height_ft",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`ceilings?(?:\s+height)?\s+(?:at\s+|of\s+|:\s*)?(\d+(?:\.\d+)?)\s*(?:ft|feet|foot|')`),
			regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:ft|feet|foot|')\s+ceilings?`),
		},
	},
	{
		variable: "floor_sf",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`floors?\s+(?:at\s+|of\s+|:\s*)?(\d+(?:\.\d+)?)\s*(?:sf\b|sq(?:uare)?\s*(?:feet|foot|ft))`),
			regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:sf|square\s+feet)\s+(?:of\s+)?floors?`),
		},
	},
	{
		variable: "deck_sf",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`decks?\s+(?:at\s+|of\s+|:\s*)?(\d+(?:\.\d+)?)\s*(?:sf\b|sq(?:uare)?\s*(?:feet|foot|ft))`),
			regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:sf|square\s+feet)\s+(?:of\s+)?decks?`),
		},
	},
	{
		variable: "roof_sq",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`roofs?\s+(?:at\s+|of\s+|:\s*)?(\d+(?:\.\d+)?)\s*(?:sq\b|squares)`),
		},
	},
	{
		variable: "soffit_lf",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`soffits?\s+(?:at\s+|of\s+|:\s*)?(\d+(?:\.\d+)?)\s*(?:lf\b|lin(?:ear)?\s*(?:feet|foot|ft))`),
			regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:lf|linear\s+(?:feet|foot))\s+(?:of\s+)?soffits?`),
		},
	},
	{
		variable: "door_count",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(\d+|[a-z]+(?:[\s-][a-z]+)?)\s+doors?\b`),
			regexp.MustCompile(`doors?\s*[:x]\s*(\d+)`),
		},
	},
	{
		variable: "window_count",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(\d+|[a-z]+(?:[\s-][a-z]+)?)\s+windows?\b`),
			regexp.MustCompile(`windows?\s*[:x]\s*(\d+)`),
		},
	},
	{
		variable: "room_count",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(\d+|[a-z]+(?:[\s-][a-z]+)?)\s+rooms?\b`),
		},
	},
}

// ExtractMeasurements scans free text for measurement values using the
// per-concept pattern library. Case-insensitive; first match per variable
// wins.
func ExtractMeasurements(text string) map[string]float64 {
	lower := strings.ToLower(text)
	out := make(map[string]float64)

	for _, mp := range measurementPatterns {
		if _, bound := out[mp.variable]; bound {
			continue
		}
		for _, re := range mp.patterns {
			m := re.FindStringSubmatch(lower)
			if m == nil {
				continue
			}
			if v, ok := parseQuantity(m[1]); ok {
				out[mp.variable] = v
				break
			}
		}
	}

	return out
}
