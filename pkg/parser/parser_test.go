package parser_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"github.com/takeline-lab/takeline/pkg/parser"
)

func TestParseSetDefaults(t *testing.T) {
	t.Run("tax and markup in one sentence yield one action", func(t *testing.T) {
		res := parser.Parse("tax 7 markup 20", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Array(t, res.Actions).Length(1)

		action := res.Actions[0]
		gt.Value(t, action.Kind).Equal(types.ActionProjectSetDefaults)
		gt.Number(t, action.Confidence).Equal(0.95)

		params := gt.Cast[*model.SetDefaultsParams](t, action.Params)
		gt.Value(t, params.TaxPercent).NotNil()
		gt.Number(t, *params.TaxPercent).Equal(7)
		gt.Value(t, params.MarkupPercent).NotNil()
		gt.Number(t, *params.MarkupPercent).Equal(20)
		gt.Value(t, params.LaborBurdenPercent).Nil()
		gt.Value(t, params.WastePercent).Nil()
	})

	t.Run("labor burden and waste", func(t *testing.T) {
		res := parser.Parse("set labor burden to 32% and waste to 10%", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Array(t, res.Actions).Length(1)

		params := gt.Cast[*model.SetDefaultsParams](t, res.Actions[0].Params)
		gt.Number(t, *params.LaborBurdenPercent).Equal(32)
		gt.Number(t, *params.WastePercent).Equal(10)
	})
}

func TestParseAddItem(t *testing.T) {
	t.Run("quantity unit and price", func(t *testing.T) {
		res := parser.Parse("Add drywall 1050 sf at $12.99", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Array(t, res.Actions).Length(1)

		action := res.Actions[0]
		gt.Value(t, action.Kind).Equal(types.ActionTakeoffAddItem)
		gt.Number(t, action.Confidence).Equal(0.85)

		params := gt.Cast[*model.AddItemParams](t, action.Params)
		gt.Value(t, params.Description).Equal("Drywall")
		gt.Number(t, params.Quantity).Equal(1050)
		gt.Value(t, params.Unit).Equal("SF")
		gt.Value(t, params.Category).Equal("Drywall")
		gt.Value(t, params.UnitCost).NotNil()
		gt.Number(t, *params.UnitCost).Equal(12.99)
	})

	t.Run("word quantity and unit synonym", func(t *testing.T) {
		res := parser.Parse("add interior doors twenty five each", parser.Context{})
		gt.Bool(t, res.Success).True()

		params := gt.Cast[*model.AddItemParams](t, res.Actions[0].Params)
		gt.Number(t, params.Quantity).Equal(25)
		gt.Value(t, params.Unit).Equal("EA")
		gt.Value(t, params.Category).Equal("Doors & Windows")
		gt.Value(t, params.UnitCost).Nil()
	})

	t.Run("comma separated items become add_multiple", func(t *testing.T) {
		res := parser.Parse("add studs 120 ea at $4.25, plywood 30 sheets", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Array(t, res.Actions).Length(1)
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionTakeoffAddMultiple)

		params := gt.Cast[*model.AddMultipleParams](t, res.Actions[0].Params)
		gt.Array(t, params.Items).Length(2)
		gt.Value(t, params.Items[0].Description).Equal("Studs")
		gt.Value(t, params.Items[0].Category).Equal("Framing")
		gt.Number(t, *params.Items[0].UnitCost).Equal(4.25)
		gt.Value(t, params.Items[1].Unit).Equal("SHEET")
	})
}

func TestParseGenerateDrafts(t *testing.T) {
	t.Run("assemblies and embedded measurements", func(t *testing.T) {
		res := parser.Parse("generate drafts using framing + drywall, walls 150 lf, ceiling 8 ft", parser.Context{ProjectType: "basement"})
		gt.Bool(t, res.Success).True()
		gt.Array(t, res.Actions).Length(1)

		action := res.Actions[0]
		gt.Value(t, action.Kind).Equal(types.ActionTakeoffGenerateDrafts)
		gt.Number(t, action.Confidence).Equal(0.8)

		params := gt.Cast[*model.GenerateDraftsParams](t, action.Params)
		gt.Array(t, params.Assemblies).Equal([]string{"framing", "drywall"})
		gt.Number(t, params.Variables["wall_lf"]).Equal(150)
		gt.Number(t, params.Variables["ceiling_height_ft"]).Equal(8)
	})

	t.Run("no assembly named asks for clarification", func(t *testing.T) {
		res := parser.Parse("generate drafts", parser.Context{})
		gt.Bool(t, res.Success).False()
		gt.Value(t, res.MissingInfo).NotEqual("")
		gt.Value(t, res.Error).Equal("")
	})
}

func TestParseDraftScope(t *testing.T) {
	t.Run("promote all drafts", func(t *testing.T) {
		res := parser.Parse("promote all drafts", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionTakeoffPromoteDrafts)

		params := gt.Cast[*model.PromoteDraftsParams](t, res.Actions[0].Params)
		gt.Value(t, params.Scope).Equal(types.ScopeAll)
	})

	t.Run("delete selected drafts", func(t *testing.T) {
		res := parser.Parse("delete selected drafts", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionTakeoffDeleteDrafts)

		params := gt.Cast[*model.DeleteDraftsParams](t, res.Actions[0].Params)
		gt.Value(t, params.Scope).Equal(types.ScopeSelected)
	})
}

func TestParseUnresolvedIntents(t *testing.T) {
	t.Run("delete item without target", func(t *testing.T) {
		res := parser.Parse("delete item", parser.Context{})
		gt.Bool(t, res.Success).False()
		gt.Value(t, res.MissingInfo).NotEqual("")
	})

	t.Run("open plan without file reference", func(t *testing.T) {
		res := parser.Parse("open plan", parser.Context{})
		gt.Bool(t, res.Success).False()
		gt.Value(t, res.MissingInfo).NotEqual("")
	})

	t.Run("delete with target parses", func(t *testing.T) {
		res := parser.Parse("delete the drywall line", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionTakeoffDeleteItem)
	})
}

func TestParseMiscIntents(t *testing.T) {
	t.Run("project creation", func(t *testing.T) {
		res := parser.Parse("new project Smith basement", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionProjectCreate)
		gt.Number(t, res.Actions[0].Confidence).Equal(0.9)

		params := gt.Cast[*model.CreateProjectParams](t, res.Actions[0].Params)
		gt.Value(t, params.Name).Equal("Smith Basement")
		gt.Value(t, params.ProjectType).Equal("basement")
	})

	t.Run("labor task line", func(t *testing.T) {
		res := parser.Parse("add labor task hang and finish 16 hours at $85/hr", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionLaborAddTaskLine)

		params := gt.Cast[*model.AddTaskLineParams](t, res.Actions[0].Params)
		gt.Value(t, params.Description).Equal("Hang And Finish")
		gt.Number(t, params.Hours).Equal(16)
		gt.Number(t, *params.Rate).Equal(85)
	})

	t.Run("categorized csv export", func(t *testing.T) {
		res := parser.Parse("export categorized csv", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionExportCSV)
		gt.Number(t, res.Actions[0].Confidence).Equal(0.95)

		params := gt.Cast[*model.ExportParams](t, res.Actions[0].Params)
		gt.Bool(t, params.Categorized).True()
	})

	t.Run("pdf export", func(t *testing.T) {
		res := parser.Parse("export the estimate as pdf", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionExportPDF)
		gt.Number(t, res.Actions[0].Confidence).Equal(0.9)
	})

	t.Run("show issues", func(t *testing.T) {
		res := parser.Parse("show open issues", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionQAShowIssues)
	})

	t.Run("open named plan", func(t *testing.T) {
		res := parser.Parse("open plan first floor", parser.Context{})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.Actions[0].Kind).Equal(types.ActionPlansOpen)

		params := gt.Cast[*model.OpenPlanParams](t, res.Actions[0].Params)
		gt.Value(t, params.Name).Equal("first floor")
	})
}

func TestParseFailureModes(t *testing.T) {
	t.Run("empty input returns help text", func(t *testing.T) {
		res := parser.Parse("", parser.Context{})
		gt.Bool(t, res.Success).False()
		gt.Value(t, res.Error).NotEqual("")
		gt.Array(t, res.Actions).Length(0)
	})

	t.Run("gibberish returns help text", func(t *testing.T) {
		res := parser.Parse("frobnicate the widget", parser.Context{})
		gt.Bool(t, res.Success).False()
		gt.Value(t, res.Error).NotEqual("")
	})

	t.Run("parsing is deterministic", func(t *testing.T) {
		text := "tax 7 markup 20"
		first := parser.Parse(text, parser.Context{})
		for range 10 {
			gt.Value(t, parser.Parse(text, parser.Context{})).Equal(first)
		}
	})

	t.Run("case does not affect matching", func(t *testing.T) {
		lower := parser.Parse("add drywall 1050 sf", parser.Context{})
		upper := parser.Parse("ADD DRYWALL 1050 SF", parser.Context{})
		gt.Value(t, upper).Equal(lower)
	})
}

func TestExtractMeasurements(t *testing.T) {
	t.Run("first pattern per variable wins", func(t *testing.T) {
		vars := parser.ExtractMeasurements("walls 150 lf, walls 900 sf, ceiling 8 ft, 3 doors, two windows")
		gt.Number(t, vars["wall_lf"]).Equal(150)
		gt.Number(t, vars["wall_sf"]).Equal(900)
		gt.Number(t, vars["ceiling_height_ft"]).Equal(8)
		gt.Number(t, vars["door_count"]).Equal(3)
		gt.Number(t, vars["window_count"]).Equal(2)
	})

	t.Run("no measurements", func(t *testing.T) {
		gt.Map(t, parser.ExtractMeasurements("promote all drafts")).Length(0)
	})
}

func TestNormalizeUnit(t *testing.T) {
	gt.Value(t, parser.NormalizeUnit("square feet")).Equal("SF")
	gt.Value(t, parser.NormalizeUnit("SqFt")).Equal("SF")
	gt.Value(t, parser.NormalizeUnit("each")).Equal("EA")
	gt.Value(t, parser.NormalizeUnit("hours")).Equal("HR")
	gt.Value(t, parser.NormalizeUnit("bundle")).Equal("BUNDLE")
}

func TestInferCategory(t *testing.T) {
	gt.Value(t, parser.InferCategory("drywall 5/8 type x")).Equal("Drywall")
	gt.Value(t, parser.InferCategory("sheetrock screws")).Equal("Drywall")
	gt.Value(t, parser.InferCategory("2x4 studs")).Equal("Framing")
	gt.Value(t, parser.InferCategory("mystery widget")).Equal("General")
}
