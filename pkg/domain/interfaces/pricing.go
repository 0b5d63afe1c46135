package interfaces

import (
	"context"

	"github.com/takeline-lab/takeline/pkg/domain/model"
)

// PricingService is the external pricing collaborator: given item
// descriptions and an optional region, it returns ranked price candidates.
// Consumed only by the bulk-pricing use case, never by the parser or
// evaluator.
type PricingService interface {
	Lookup(ctx context.Context, descriptions []string, region string) ([]model.PriceCandidate, error)
}

// PlanStore resolves named plan files to navigable URLs.
type PlanStore interface {
	// Resolve returns a browsable URL for the named plan file
	Resolve(ctx context.Context, name string) (string, error)

	// List returns the plan file names available
	List(ctx context.Context) ([]string, error)
}
