package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/domain/interfaces"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/repository/firestore"
	"github.com/takeline-lab/takeline/pkg/repository/memory"
)

func runTakeoffRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newProject := func(t *testing.T, repo interfaces.Repository) int64 {
		t.Helper()
		p, err := repo.Project().Create(context.Background(), &model.Project{Name: "Test Project"})
		gt.NoError(t, err).Required()
		return p.ID
	}

	t.Run("Create stores an item with unit cost", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		projectID := newProject(t, repo)

		cost := 12.99
		created, err := repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID:   projectID,
			Category:    "Drywall",
			Description: "drywall",
			Quantity:    1050,
			Unit:        "SF",
			UnitCost:    &cost,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(int64(0))
		gt.Value(t, created.Category).Equal("Drywall")
		gt.Value(t, created.UnitCost).NotNil()
		gt.Value(t, *created.UnitCost).Equal(12.99)
		gt.Bool(t, created.Draft).False()
	})

	t.Run("Create preserves nil unit cost", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		projectID := newProject(t, repo)

		created, err := repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID:   projectID,
			Description: "joist hangers",
			Quantity:    24,
			Unit:        "EA",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.UnitCost).Nil()
	})

	t.Run("CreateWithID restores a deleted item under its original ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		projectID := newProject(t, repo)

		created, err := repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID:   projectID,
			Description: "studs",
			Quantity:    100,
			Unit:        "EA",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Takeoff().Delete(ctx, created.ID)).Required()

		restored, err := repo.Takeoff().CreateWithID(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, restored.ID).Equal(created.ID)
		gt.Value(t, restored.Description).Equal("studs")

		got, err := repo.Takeoff().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Quantity).Equal(100.0)
	})

	t.Run("CreateWithID rejects an occupied ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		projectID := newProject(t, repo)

		created, err := repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID:   projectID,
			Description: "plywood",
			Quantity:    20,
			Unit:        "SHEET",
		})
		gt.NoError(t, err).Required()

		_, err = repo.Takeoff().CreateWithID(ctx, created)
		gt.Value(t, err).NotNil()
	})

	t.Run("ListByProject filters and orders by creation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		projectID := newProject(t, repo)
		otherID := newProject(t, repo)

		first, err := repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID: projectID, Description: "first", Quantity: 1, Unit: "EA",
		})
		gt.NoError(t, err).Required()
		second, err := repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID: projectID, Description: "second", Quantity: 2, Unit: "EA",
		})
		gt.NoError(t, err).Required()
		_, err = repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID: otherID, Description: "other", Quantity: 3, Unit: "EA",
		})
		gt.NoError(t, err).Required()

		items, err := repo.Takeoff().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		gt.Array(t, items).Length(2)
		gt.Value(t, items[0].ID).Equal(first.ID)
		gt.Value(t, items[1].ID).Equal(second.ID)
	})

	t.Run("Update modifies quantity and draft flag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		projectID := newProject(t, repo)

		created, err := repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID:   projectID,
			Description: "insulation",
			Quantity:    800,
			Unit:        "SF",
			Draft:       true,
		})
		gt.NoError(t, err).Required()

		created.Quantity = 900
		created.Draft = false

		updated, err := repo.Takeoff().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Quantity).Equal(900.0)
		gt.Bool(t, updated.Draft).False()
	})

	t.Run("Delete returns ErrNotFound for missing item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Takeoff().Delete(ctx, 999999)
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})
}

func TestMemoryTakeoffRepository(t *testing.T) {
	runTakeoffRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreTakeoffRepository(t *testing.T) {
	runTakeoffRepositoryTest(t, newFirestoreRepository)
}
