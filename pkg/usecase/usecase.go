package usecase

import (
	"github.com/takeline-lab/takeline/pkg/domain/interfaces"
	"github.com/takeline-lab/takeline/pkg/domain/model"
)

type UseCases struct {
	repo    interfaces.Repository
	catalog *model.AssemblyCatalog
	pricing interfaces.PricingService
	plans   interfaces.PlanStore
}

type Option func(*UseCases)

func WithAssemblyCatalog(catalog *model.AssemblyCatalog) Option {
	return func(uc *UseCases) {
		uc.catalog = catalog
	}
}

func WithPricingService(svc interfaces.PricingService) Option {
	return func(uc *UseCases) {
		uc.pricing = svc
	}
}

func WithPlanStore(store interfaces.PlanStore) Option {
	return func(uc *UseCases) {
		uc.plans = store
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Repository exposes the record store for read-only surfaces (log listing,
// takeoff views).
func (uc *UseCases) Repository() interfaces.Repository {
	return uc.repo
}
