package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/repository/memory"
	"github.com/takeline-lab/takeline/pkg/usecase"
)

type stubPricingService struct {
	chunks    [][]string
	failChunk int
	price     float64
}

func (s *stubPricingService) Lookup(ctx context.Context, descriptions []string, region string) ([]model.PriceCandidate, error) {
	s.chunks = append(s.chunks, descriptions)
	if s.failChunk > 0 && len(s.chunks) == s.failChunk {
		return nil, errors.New("pricing backend unavailable")
	}

	candidates := make([]model.PriceCandidate, 0, len(descriptions)*2)
	for _, d := range descriptions {
		candidates = append(candidates,
			model.PriceCandidate{Description: d, UnitCost: s.price, Unit: "EA", Source: "catalog-a", Confidence: 0.9},
			model.PriceCandidate{Description: d, UnitCost: s.price * 2, Unit: "EA", Source: "catalog-b", Confidence: 0.4},
		)
	}
	return candidates, nil
}

func seedUnpricedItems(t *testing.T, uc *usecase.UseCases, projectID int64, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		_, err := uc.Repository().Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID:   projectID,
			Category:    "General",
			Description: fmt.Sprintf("material %02d", i),
			Quantity:    1,
			Unit:        "EA",
		})
		gt.NoError(t, err).Required()
	}
}

func TestApplyPricing(t *testing.T) {
	ctx := context.Background()

	t.Run("lookups run in chunks of ten", func(t *testing.T) {
		svc := &stubPricingService{price: 3.25}
		uc := usecase.New(memory.New(), usecase.WithPricingService(svc))
		projectID := createProject(t, uc, "Smith Basement", "basement")
		seedUnpricedItems(t, uc, projectID, 25)

		progress, err := uc.ApplyPricing(ctx, projectID, "midwest")
		gt.NoError(t, err).Required()
		gt.Value(t, progress.Total).Equal(25)
		gt.Value(t, progress.Priced).Equal(25)

		gt.Array(t, svc.chunks).Length(3)
		gt.Array(t, svc.chunks[0]).Length(10)
		gt.Array(t, svc.chunks[1]).Length(10)
		gt.Array(t, svc.chunks[2]).Length(5)

		items, err := uc.Repository().Takeoff().ListByProject(ctx, projectID)
		gt.NoError(t, err).Required()
		for _, item := range items {
			gt.Value(t, item.UnitCost).NotNil()
			gt.Value(t, *item.UnitCost).Equal(3.25)
		}
	})

	t.Run("a failed chunk aborts the rest but keeps earlier prices", func(t *testing.T) {
		svc := &stubPricingService{price: 3.25, failChunk: 2}
		uc := usecase.New(memory.New(), usecase.WithPricingService(svc))
		projectID := createProject(t, uc, "Smith Basement", "basement")
		seedUnpricedItems(t, uc, projectID, 25)

		progress, err := uc.ApplyPricing(ctx, projectID, "midwest")
		gt.Value(t, err).NotNil()
		gt.Value(t, progress.Total).Equal(25)
		gt.Value(t, progress.Priced).Equal(10)

		gt.Array(t, svc.chunks).Length(2)
	})

	t.Run("priced and draft items are skipped", func(t *testing.T) {
		svc := &stubPricingService{price: 3.25}
		uc := usecase.New(memory.New(), usecase.WithPricingService(svc))
		projectID := createProject(t, uc, "Smith Basement", "basement")

		cost := 9.99
		_, err := uc.Repository().Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID: projectID, Description: "priced", Quantity: 1, Unit: "EA", UnitCost: &cost,
		})
		gt.NoError(t, err).Required()
		_, err = uc.Repository().Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID: projectID, Description: "draft", Quantity: 1, Unit: "EA", Draft: true,
		})
		gt.NoError(t, err).Required()

		progress, err := uc.ApplyPricing(ctx, projectID, "")
		gt.NoError(t, err).Required()
		gt.Value(t, progress.Total).Equal(0)
		gt.Array(t, svc.chunks).Length(0)
	})

	t.Run("missing service is an explicit error", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.ApplyPricing(ctx, 1, "")
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, usecase.ErrPricingUnavailable)).True()
	})
}
