package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/utils/logging"
)

const pricingChunkSize = 10

// PricingProgress reports a partially applied bulk-pricing run. Priced
// counts items updated before any failure; a chunk failure aborts the
// remaining chunks but earlier chunks stay applied.
type PricingProgress struct {
	Total  int `json:"total"`
	Priced int `json:"priced"`
}

// ApplyPricing looks up price candidates for every unpriced, non-draft item
// in the project and applies the best candidate per description.
func (uc *UseCases) ApplyPricing(ctx context.Context, projectID int64, region string) (*PricingProgress, error) {
	if uc.pricing == nil {
		return nil, goerr.Wrap(ErrPricingUnavailable, "cannot apply pricing")
	}

	items, err := uc.repo.Takeoff().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list items", goerr.V(ProjectIDKey, projectID))
	}

	var unpriced []*model.TakeoffItem
	for _, item := range items {
		if !item.Draft && item.UnitCost == nil {
			unpriced = append(unpriced, item)
		}
	}

	progress := &PricingProgress{Total: len(unpriced)}

	for start := 0; start < len(unpriced); start += pricingChunkSize {
		end := start + pricingChunkSize
		if end > len(unpriced) {
			end = len(unpriced)
		}
		chunk := unpriced[start:end]

		descriptions := make([]string, len(chunk))
		for i, item := range chunk {
			descriptions[i] = item.Description
		}

		candidates, err := uc.pricing.Lookup(ctx, descriptions, region)
		if err != nil {
			return progress, goerr.Wrap(err, "pricing lookup failed",
				goerr.V(ProjectIDKey, projectID), goerr.V("chunk_start", start))
		}

		for _, item := range chunk {
			best := bestCandidate(candidates, item.Description)
			if best == nil {
				continue
			}
			cost := best.UnitCost
			item.UnitCost = &cost
			if _, err := uc.repo.Takeoff().Update(ctx, item); err != nil {
				return progress, goerr.Wrap(err, "failed to apply price", goerr.V("item_id", item.ID))
			}
			progress.Priced++
		}
	}

	logging.From(ctx).Info("applied bulk pricing",
		"project_id", projectID,
		"total", progress.Total,
		"priced", progress.Priced,
	)

	return progress, nil
}

// bestCandidate picks the highest-confidence candidate whose description
// matches, case-insensitively.
func bestCandidate(candidates []model.PriceCandidate, description string) *model.PriceCandidate {
	var best *model.PriceCandidate
	for i := range candidates {
		c := &candidates[i]
		if !strings.EqualFold(c.Description, description) {
			continue
		}
		if best == nil || c.Confidence > best.Confidence {
			best = c
		}
	}
	return best
}
