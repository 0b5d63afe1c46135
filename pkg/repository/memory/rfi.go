package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
)

type rfiRepository struct {
	mu     sync.RWMutex
	rfis   map[int64]*model.RFI
	nextID int64
}

func newRFIRepository() *rfiRepository {
	return &rfiRepository{
		rfis:   make(map[int64]*model.RFI),
		nextID: 1,
	}
}

func copyRFI(rfi *model.RFI) *model.RFI {
	cp := *rfi
	return &cp
}

func (r *rfiRepository) Create(ctx context.Context, rfi *model.RFI) (*model.RFI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRFI(rfi)
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.nextID++

	r.rfis[created.ID] = created
	return copyRFI(created), nil
}

func (r *rfiRepository) Get(ctx context.Context, id int64) (*model.RFI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rfi, exists := r.rfis[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "RFI not found", goerr.V("id", id))
	}
	return copyRFI(rfi), nil
}

func (r *rfiRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.RFI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rfis []*model.RFI
	for _, rfi := range r.rfis {
		if rfi.ProjectID == projectID {
			rfis = append(rfis, copyRFI(rfi))
		}
	}
	sort.Slice(rfis, func(i, j int) bool {
		return rfis[i].ID < rfis[j].ID
	})
	return rfis, nil
}

func (r *rfiRepository) Update(ctx context.Context, rfi *model.RFI) (*model.RFI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.rfis[rfi.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "RFI not found", goerr.V("id", rfi.ID))
	}

	updated := copyRFI(rfi)
	updated.CreatedAt = existing.CreatedAt
	r.rfis[updated.ID] = updated
	return copyRFI(updated), nil
}

func (r *rfiRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rfis[id]; !exists {
		return goerr.Wrap(ErrNotFound, "RFI not found", goerr.V("id", id))
	}
	delete(r.rfis, id)
	return nil
}
