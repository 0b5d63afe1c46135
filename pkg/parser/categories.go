package parser

import "strings"

// categoryRule associates a category with the description keywords that
// select it. Rules are checked in order; the first hit wins.
type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is a fixed-priority table: more specific trades come before
// broader ones so "drywall screws" lands in Drywall, not General.
var categoryRules = []categoryRule{
	{"Drywall", []string{"drywall", "sheetrock", "gypsum", "joint compound", "mud", "corner bead"}},
	{"Framing", []string{"stud", "framing", "lumber", "joist", "plate", "header", "2x4", "2x6", "2x8", "2x10", "blocking"}},
	{"Concrete", []string{"concrete", "rebar", "footing", "slab", "cement", "mesh", "gravel"}},
	{"Roofing", []string{"shingle", "roofing", "underlayment", "felt", "ridge", "flashing", "drip edge"}},
	{"Electrical", []string{"outlet", "switch", "wire", "electrical", "breaker", "conduit", "romex", "panel"}},
	{"Plumbing", []string{"pipe", "plumbing", "fixture", "valve", "drain", "pex", "fitting", "faucet"}},
	{"Insulation", []string{"insulation", "batt", "foam board", "r-13", "r-19", "r-21", "vapor barrier"}},
	{"Flooring", []string{"tile", "flooring", "carpet", "vinyl", "hardwood", "laminate", "grout", "thinset"}},
	{"Doors & Windows", []string{"door", "window", "casing", "jamb", "threshold", "sill"}},
	{"Paint", []string{"paint", "primer", "caulk", "stain"}},
	{"Labor", []string{"labor", "crew", "task"}},
}

// InferCategory maps a free-text item description to a trade category using
// the fixed-priority keyword table, defaulting to General.
func InferCategory(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.category
			}
		}
	}
	return "General"
}
