package model

import "strings"

// AssemblyVariable describes one named measurement an assembly's formulas
// reference.
type AssemblyVariable struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Unit  string `json:"unit"`
}

// AssemblyItem is one parametric line within an assembly: the quantity is a
// formula over the assembly's variables.
type AssemblyItem struct {
	MaterialRef     string `json:"material_ref"`
	QuantityFormula string `json:"quantity_formula"`
	Description     string `json:"description"`
	Unit            string `json:"unit"`
}

// AssemblyDefinition is a reusable, parametric definition of the materials
// needed for a trade scope (e.g. "basement framing"). Static reference data,
// loaded once at startup.
type AssemblyDefinition struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Trade        string             `json:"trade"`
	ProjectTypes []string           `json:"project_types"`
	Variables    []AssemblyVariable `json:"variables"`
	Items        []AssemblyItem     `json:"items"`
}

// AppliesTo reports whether the assembly is tagged with the project type.
// An assembly with no project types applies everywhere.
func (a *AssemblyDefinition) AppliesTo(projectType string) bool {
	if len(a.ProjectTypes) == 0 {
		return true
	}
	for _, pt := range a.ProjectTypes {
		if strings.EqualFold(pt, projectType) {
			return true
		}
	}
	return false
}

// MatchesFragment reports whether the assembly's name or trade contains the
// fragment, case-insensitively.
func (a *AssemblyDefinition) MatchesFragment(fragment string) bool {
	f := strings.ToLower(strings.TrimSpace(fragment))
	if f == "" {
		return false
	}
	return strings.Contains(strings.ToLower(a.Name), f) ||
		strings.Contains(strings.ToLower(a.Trade), f)
}

// AssemblyCatalog is the full set of assembly definitions available to the
// resolver. Immutable after load.
type AssemblyCatalog struct {
	assemblies []AssemblyDefinition
}

// NewAssemblyCatalog builds a catalog from definitions.
func NewAssemblyCatalog(defs []AssemblyDefinition) *AssemblyCatalog {
	assemblies := make([]AssemblyDefinition, len(defs))
	copy(assemblies, defs)
	return &AssemblyCatalog{assemblies: assemblies}
}

// ForProjectType returns the assemblies tagged with the project type.
func (c *AssemblyCatalog) ForProjectType(projectType string) []AssemblyDefinition {
	var out []AssemblyDefinition
	for _, a := range c.assemblies {
		if a.AppliesTo(projectType) {
			out = append(out, a)
		}
	}
	return out
}

// All returns every assembly in the catalog.
func (c *AssemblyCatalog) All() []AssemblyDefinition {
	out := make([]AssemblyDefinition, len(c.assemblies))
	copy(out, c.assemblies)
	return out
}
