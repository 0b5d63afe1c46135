package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/domain/model"
)

func TestAssemblyAppliesTo(t *testing.T) {
	typed := model.AssemblyDefinition{
		ID:           "basement-framing",
		Name:         "Basement Framing",
		Trade:        "Framing",
		ProjectTypes: []string{"basement"},
	}
	gt.Bool(t, typed.AppliesTo("basement")).True()
	gt.Bool(t, typed.AppliesTo("Basement")).True()
	gt.Bool(t, typed.AppliesTo("deck")).False()

	untyped := model.AssemblyDefinition{ID: "drywall", Name: "Drywall Walls", Trade: "Drywall"}
	gt.Bool(t, untyped.AppliesTo("basement")).True()
	gt.Bool(t, untyped.AppliesTo("")).True()
}

func TestAssemblyMatchesFragment(t *testing.T) {
	a := model.AssemblyDefinition{ID: "basement-framing", Name: "Basement Framing", Trade: "Framing"}

	gt.Bool(t, a.MatchesFragment("framing")).True()
	gt.Bool(t, a.MatchesFragment("BASEMENT")).True()
	gt.Bool(t, a.MatchesFragment("  framing  ")).True()
	gt.Bool(t, a.MatchesFragment("drywall")).False()
	gt.Bool(t, a.MatchesFragment("")).False()
}

func TestAssemblyCatalog(t *testing.T) {
	catalog := model.NewAssemblyCatalog([]model.AssemblyDefinition{
		{ID: "a", Name: "Basement Framing", Trade: "Framing", ProjectTypes: []string{"basement"}},
		{ID: "b", Name: "Drywall Walls", Trade: "Drywall"},
		{ID: "c", Name: "Deck Framing", Trade: "Framing", ProjectTypes: []string{"deck"}},
	})

	gt.Array(t, catalog.All()).Length(3)
	gt.Array(t, catalog.ForProjectType("basement")).Length(2)
	gt.Array(t, catalog.ForProjectType("deck")).Length(2)
	gt.Array(t, catalog.ForProjectType("kitchen")).Length(1)
}
