package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/formula"
	"github.com/takeline-lab/takeline/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Assemblies holds CLI flags for the assembly catalog
type Assemblies struct {
	path string
}

// Flags returns CLI flags for assembly catalog configuration
func (a *Assemblies) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "assemblies",
			Usage:       "Path to assembly catalog TOML file (built-in catalog when omitted)",
			Sources:     cli.EnvVars("TAKELINE_ASSEMBLIES"),
			Destination: &a.path,
		},
	}
}

// Configure loads the assembly catalog from the configured TOML file, or
// returns the built-in catalog when no path is set.
func (a *Assemblies) Configure() (*model.AssemblyCatalog, error) {
	if a.path == "" {
		logging.Default().Info("Using built-in assembly catalog")
		return model.NewAssemblyCatalog(builtinAssemblies()), nil
	}

	catalog, err := LoadAssemblyCatalog(a.path)
	if err != nil {
		return nil, err
	}
	logging.Default().Info("Loaded assembly catalog",
		"path", a.path,
		"assemblies", len(catalog.All()),
	)
	return catalog, nil
}

// CatalogFile is the TOML shape of an assembly catalog file
type CatalogFile struct {
	Assemblies []AssemblyEntry `toml:"assembly"`
}

// AssemblyEntry represents one assembly definition in a catalog file
type AssemblyEntry struct {
	ID           string          `toml:"id"`
	Name         string          `toml:"name"`
	Trade        string          `toml:"trade"`
	ProjectTypes []string        `toml:"project_types"`
	Variables    []VariableEntry `toml:"variables"`
	Items        []ItemEntry     `toml:"items"`
}

// VariableEntry represents one named measurement an assembly references
type VariableEntry struct {
	Name  string `toml:"name"`
	Label string `toml:"label"`
	Unit  string `toml:"unit"`
}

// ItemEntry represents one parametric line item within an assembly
type ItemEntry struct {
	MaterialRef     string `toml:"material_ref"`
	QuantityFormula string `toml:"quantity_formula"`
	Description     string `toml:"description"`
	Unit            string `toml:"unit"`
}

// Validate checks if the AssemblyEntry is valid. Every variable a formula
// references must be declared on the assembly.
func (e *AssemblyEntry) Validate() error {
	if e.ID == "" {
		return goerr.New("assembly id is required", goerr.V("name", e.Name))
	}
	if e.Name == "" {
		return goerr.New("assembly name is required", goerr.V("id", e.ID))
	}
	if e.Trade == "" {
		return goerr.New("assembly trade is required", goerr.V("id", e.ID))
	}
	if len(e.Items) == 0 {
		return goerr.New("assembly must have at least one item", goerr.V("id", e.ID))
	}

	declared := make(map[string]bool, len(e.Variables))
	for _, v := range e.Variables {
		if v.Name == "" {
			return goerr.New("variable name is required", goerr.V("assembly", e.ID))
		}
		declared[v.Name] = true
	}

	for _, item := range e.Items {
		if item.Description == "" {
			return goerr.New("item description is required", goerr.V("assembly", e.ID))
		}
		if item.QuantityFormula == "" {
			return goerr.New("item quantity formula is required",
				goerr.V("assembly", e.ID), goerr.V("item", item.Description))
		}
		for _, name := range formula.ExtractVariables(item.QuantityFormula) {
			if !declared[name] {
				return goerr.New("formula references undeclared variable",
					goerr.V("assembly", e.ID),
					goerr.V("item", item.Description),
					goerr.V("variable", name))
			}
		}
	}

	return nil
}

// Validate checks if the CatalogFile is valid
func (f *CatalogFile) Validate() error {
	ids := make(map[string]bool)
	for i := range f.Assemblies {
		if err := f.Assemblies[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid assembly")
		}
		if ids[f.Assemblies[i].ID] {
			return goerr.New("duplicate assembly ID", goerr.V("id", f.Assemblies[i].ID))
		}
		ids[f.Assemblies[i].ID] = true
	}
	return nil
}

func (e *AssemblyEntry) toDefinition() model.AssemblyDefinition {
	variables := make([]model.AssemblyVariable, len(e.Variables))
	for i, v := range e.Variables {
		variables[i] = model.AssemblyVariable{
			Name:  v.Name,
			Label: v.Label,
			Unit:  v.Unit,
		}
	}

	items := make([]model.AssemblyItem, len(e.Items))
	for i, item := range e.Items {
		items[i] = model.AssemblyItem{
			MaterialRef:     item.MaterialRef,
			QuantityFormula: item.QuantityFormula,
			Description:     item.Description,
			Unit:            item.Unit,
		}
	}

	return model.AssemblyDefinition{
		ID:           e.ID,
		Name:         e.Name,
		Trade:        e.Trade,
		ProjectTypes: e.ProjectTypes,
		Variables:    variables,
		Items:        items,
	}
}

// LoadAssemblyCatalog loads and validates an assembly catalog from a TOML file
func LoadAssemblyCatalog(path string) (*model.AssemblyCatalog, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read assembly catalog", goerr.V("path", path))
	}

	var file CatalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog", goerr.V("path", path))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V("path", path))
	}

	defs := make([]model.AssemblyDefinition, len(file.Assemblies))
	for i := range file.Assemblies {
		defs[i] = file.Assemblies[i].toDefinition()
	}
	return model.NewAssemblyCatalog(defs), nil
}

// builtinAssemblies is a small starter catalog covering the most common
// residential scopes. Deployments with a real materials database should
// provide their own catalog file.
func builtinAssemblies() []model.AssemblyDefinition {
	return []model.AssemblyDefinition{
		{
			ID:           "basement-framing",
			Name:         "Basement Framing",
			Trade:        "Framing",
			ProjectTypes: []string{"basement"},
			Variables: []model.AssemblyVariable{
				{Name: "wall_lf", Label: "Wall length", Unit: "LF"},
			},
			Items: []model.AssemblyItem{
				{
					MaterialRef:     "stud-2x4-8",
					QuantityFormula: "{wall_lf} / 1.333 + 10",
					Description:     "2x4x8 studs",
					Unit:            "EA",
				},
				{
					MaterialRef:     "plate-2x4-8",
					QuantityFormula: "{wall_lf} * 3 / 8",
					Description:     "2x4x8 plates",
					Unit:            "EA",
				},
			},
		},
		{
			ID:    "drywall-walls",
			Name:  "Drywall Walls",
			Trade: "Drywall",
			Variables: []model.AssemblyVariable{
				{Name: "wall_lf", Label: "Wall length", Unit: "LF"},
				{Name: "ceiling_height_ft", Label: "Ceiling height", Unit: "FT"},
			},
			Items: []model.AssemblyItem{
				{
					MaterialRef:     "drywall-4x8",
					QuantityFormula: "{wall_lf} * {ceiling_height_ft} / 32",
					Description:     "1/2\" drywall sheets 4x8",
					Unit:            "EA",
				},
			},
		},
	}
}
