package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"github.com/takeline-lab/takeline/pkg/repository/memory"
	"github.com/takeline-lab/takeline/pkg/usecase"
)

func testCatalog() *model.AssemblyCatalog {
	return model.NewAssemblyCatalog([]model.AssemblyDefinition{
		{
			ID:           "basement-framing",
			Name:         "Basement Framing",
			Trade:        "Framing",
			ProjectTypes: []string{"basement"},
			Variables: []model.AssemblyVariable{
				{Name: "wall_lf", Label: "Wall length", Unit: "LF"},
				{Name: "ceiling_height_ft", Label: "Ceiling height", Unit: "FT"},
			},
			Items: []model.AssemblyItem{
				{MaterialRef: "stud-2x4", QuantityFormula: "{wall_lf} / 1.333 + 10", Description: "2x4 studs 8ft", Unit: "EA"},
				{MaterialRef: "plate-2x4", QuantityFormula: "{wall_lf} * 3 / 8", Description: "2x4 plates 8ft", Unit: "EA"},
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
				{MaterialRef: "drywall-sheet", QuantityFormula: "{wall_lf} * {ceiling_height_ft} / 32", Description: "1/2\" drywall sheets", Unit: "SHEET"},
			},
		},
	})
}

func newTestUseCases(t *testing.T) *usecase.UseCases {
	t.Helper()
	return usecase.New(memory.New(), usecase.WithAssemblyCatalog(testCatalog()))
}

func createProject(t *testing.T, uc *usecase.UseCases, name, projectType string) int64 {
	t.Helper()

	action, err := model.NewAction(types.ActionProjectCreate, 0.9, &model.CreateProjectParams{
		Name:        name,
		ProjectType: projectType,
	})
	gt.NoError(t, err).Required()

	res := uc.ExecuteAction(context.Background(), action, usecase.ExecContext{Source: types.SourceAPI})
	gt.Bool(t, res.Success).True()
	gt.Value(t, res.Undo).NotNil()
	return res.Undo.ProjectID
}

func mustAction(t *testing.T, kind types.ActionKind, params model.ActionParams) model.Action {
	t.Helper()
	action, err := model.NewAction(kind, 0.9, params)
	gt.NoError(t, err).Required()
	return action
}

func TestExecuteAction(t *testing.T) {
	ctx := context.Background()

	t.Run("add item requires an active project", func(t *testing.T) {
		uc := newTestUseCases(t)

		action := mustAction(t, types.ActionTakeoffAddItem, &model.AddItemParams{
			Description: "drywall", Quantity: 1050, Unit: "SF", Category: "Drywall",
		})

		res := uc.ExecuteAction(ctx, action, usecase.ExecContext{Source: types.SourceAPI})
		gt.Bool(t, res.Success).False()
		gt.Value(t, res.Message).Equal("No active project. Create or select a project first.")
	})

	t.Run("add item stores the line and captures undo state", func(t *testing.T) {
		uc := newTestUseCases(t)
		projectID := createProject(t, uc, "Smith Basement", "basement")

		cost := 12.99
		action := mustAction(t, types.ActionTakeoffAddItem, &model.AddItemParams{
			Description: "drywall", Quantity: 1050, Unit: "SF", UnitCost: &cost, Category: "Drywall",
		})

		res := uc.ExecuteAction(ctx, action, usecase.ExecContext{ProjectID: projectID, Source: types.SourceAPI})
		gt.Bool(t, res.Success).True()
		gt.Bool(t, res.Undoable).True()
		gt.Value(t, res.Undo).NotNil()
		gt.Array(t, res.Undo.ItemIDs).Length(1)

		items, err := uc.Repository().Takeoff().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
		gt.Value(t, items[0].Description).Equal("drywall")
		gt.Bool(t, items[0].Draft).False()
	})

	t.Run("unknown action kind fails without panicking", func(t *testing.T) {
		uc := newTestUseCases(t)

		res := uc.ExecuteAction(ctx, model.Action{Kind: types.ActionKind("bogus.kind")}, usecase.ExecContext{})
		gt.Bool(t, res.Success).False()
	})

	t.Run("update item with ambiguous match fails by name", func(t *testing.T) {
		uc := newTestUseCases(t)
		projectID := createProject(t, uc, "Smith Basement", "basement")
		ectx := usecase.ExecContext{ProjectID: projectID, Source: types.SourceAPI}

		uc.ExecuteAction(ctx, mustAction(t, types.ActionTakeoffAddItem, &model.AddItemParams{
			Description: "drywall sheets", Quantity: 30, Unit: "SHEET", Category: "Drywall",
		}), ectx)
		uc.ExecuteAction(ctx, mustAction(t, types.ActionTakeoffAddItem, &model.AddItemParams{
			Description: "drywall screws", Quantity: 5, Unit: "BOX", Category: "Drywall",
		}), ectx)

		qty := 40.0
		res := uc.ExecuteAction(ctx, mustAction(t, types.ActionTakeoffUpdateItem, &model.UpdateItemParams{
			Match: "drywall", Quantity: &qty,
		}), ectx)
		gt.Bool(t, res.Success).False()
		gt.Bool(t, len(res.Message) > 0).True()
	})

	t.Run("delete drafts in all scope is not undoable", func(t *testing.T) {
		uc := newTestUseCases(t)
		projectID := createProject(t, uc, "Smith Basement", "basement")
		ectx := usecase.ExecContext{ProjectID: projectID, Source: types.SourceAPI}

		res := uc.ExecuteAction(ctx, mustAction(t, types.ActionTakeoffGenerateDrafts, &model.GenerateDraftsParams{
			Assemblies: []string{"framing"},
			Variables:  map[string]float64{"wall_lf": 150, "ceiling_height_ft": 8},
		}), ectx)
		gt.Bool(t, res.Success).True()

		res = uc.ExecuteAction(ctx, mustAction(t, types.ActionTakeoffDeleteDrafts, &model.DeleteDraftsParams{
			Scope: types.ScopeAll,
		}), ectx)
		gt.Bool(t, res.Success).True()
		gt.Bool(t, res.Undoable).False()
		gt.Value(t, res.Undo).Nil()
	})
}

func TestExecuteActions(t *testing.T) {
	ctx := context.Background()

	t.Run("later actions see the project created earlier in the batch", func(t *testing.T) {
		uc := newTestUseCases(t)

		actions := []model.Action{
			mustAction(t, types.ActionProjectCreate, &model.CreateProjectParams{Name: "Deck Job", ProjectType: "deck"}),
			mustAction(t, types.ActionTakeoffAddItem, &model.AddItemParams{
				Description: "joist hangers", Quantity: 24, Unit: "EA", Category: "Framing",
			}),
		}

		results, logID, err := uc.ExecuteActions(ctx, "new deck project, add joist hangers 24 ea", actions, usecase.ExecContext{Source: types.SourceAPI})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(2)
		gt.Bool(t, results[0].Success).True()
		gt.Bool(t, results[1].Success).True()

		entry, err := uc.Repository().ActionLog().Get(ctx, logID)
		gt.NoError(t, err).Required()
		gt.Value(t, entry.Status).Equal(types.LogStatusApplied)
		gt.Array(t, entry.UndoData).Length(2)
		gt.Value(t, entry.Actions.SchemaVersion).Equal(model.ActionBatchSchemaVersion)
	})

	t.Run("a failed action marks the batch failed but keeps earlier effects", func(t *testing.T) {
		uc := newTestUseCases(t)
		projectID := createProject(t, uc, "Smith Basement", "basement")
		ectx := usecase.ExecContext{ProjectID: projectID, Source: types.SourceAPI}

		actions := []model.Action{
			mustAction(t, types.ActionTakeoffAddItem, &model.AddItemParams{
				Description: "studs", Quantity: 100, Unit: "EA", Category: "Framing",
			}),
			mustAction(t, types.ActionTakeoffDeleteItem, &model.DeleteItemParams{Match: "no such thing"}),
		}

		results, logID, err := uc.ExecuteActions(ctx, "add studs 100 ea, delete no such thing", actions, ectx)
		gt.NoError(t, err).Required()
		gt.Bool(t, results[0].Success).True()
		gt.Bool(t, results[1].Success).False()

		entry, err := uc.Repository().ActionLog().Get(ctx, logID)
		gt.NoError(t, err).Required()
		gt.Value(t, entry.Status).Equal(types.LogStatusFailed)
		gt.Bool(t, entry.Undoable()).False()

		items, err := uc.Repository().Takeoff().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
	})
}

func TestRunCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("parse failure returns the help text without logging", func(t *testing.T) {
		uc := newTestUseCases(t)

		outcome, err := uc.RunCommand(ctx, "what is the weather", usecase.ExecContext{Source: types.SourceAPI})
		gt.NoError(t, err).Required()
		gt.Bool(t, outcome.Parse.Success).False()
		gt.Bool(t, len(outcome.Parse.Error) > 0).True()
		gt.Value(t, string(outcome.LogID)).Equal("")
	})

	t.Run("full pipeline from text to stored records", func(t *testing.T) {
		uc := newTestUseCases(t)
		projectID := createProject(t, uc, "Smith Basement", "basement")

		outcome, err := uc.RunCommand(ctx, "add drywall 1050 sf at $12.99", usecase.ExecContext{
			ProjectID: projectID,
			Source:    types.SourceAPI,
		})
		gt.NoError(t, err).Required()
		gt.Bool(t, outcome.Parse.Success).True()
		gt.Array(t, outcome.Results).Length(1)
		gt.Bool(t, outcome.Results[0].Success).True()

		items, err := uc.Repository().Takeoff().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(1)
		gt.Value(t, items[0].Unit).Equal("SF")
		gt.Value(t, *items[0].UnitCost).Equal(12.99)
	})
}

type stubPlanStore struct {
	urls map[string]string
}

func (s *stubPlanStore) Resolve(ctx context.Context, name string) (string, error) {
	url, ok := s.urls[name]
	if !ok {
		return "", goerr.New("no plan object matching name", goerr.V("name", name))
	}
	return url, nil
}

func (s *stubPlanStore) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.urls))
	for name := range s.urls {
		names = append(names, name)
	}
	return names, nil
}

func TestOpenPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("resolved plan becomes a navigation target", func(t *testing.T) {
		store := &stubPlanStore{urls: map[string]string{"first floor": "https://plans.example.com/first-floor.pdf"}}
		uc := usecase.New(memory.New(),
			usecase.WithAssemblyCatalog(testCatalog()),
			usecase.WithPlanStore(store),
		)

		res := uc.ExecuteAction(ctx, mustAction(t, types.ActionPlansOpen, &model.OpenPlanParams{Name: "first floor"}), usecase.ExecContext{Source: types.SourceAPI})
		gt.Bool(t, res.Success).True()
		gt.Value(t, res.NavigateTo).Equal("https://plans.example.com/first-floor.pdf")
	})

	t.Run("store failure message reaches the result verbatim", func(t *testing.T) {
		uc := usecase.New(memory.New(),
			usecase.WithAssemblyCatalog(testCatalog()),
			usecase.WithPlanStore(&stubPlanStore{}),
		)

		res := uc.ExecuteAction(ctx, mustAction(t, types.ActionPlansOpen, &model.OpenPlanParams{Name: "roof"}), usecase.ExecContext{Source: types.SourceAPI})
		gt.Bool(t, res.Success).False()
		gt.Bool(t, strings.Contains(res.Message, "no plan object matching name")).True()
	})
}
