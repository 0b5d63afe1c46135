package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
)

type takeoffRepository struct {
	mu     sync.RWMutex
	items  map[int64]*model.TakeoffItem
	nextID int64
}

func newTakeoffRepository() *takeoffRepository {
	return &takeoffRepository{
		items:  make(map[int64]*model.TakeoffItem),
		nextID: 1,
	}
}

func copyTakeoffItem(item *model.TakeoffItem) *model.TakeoffItem {
	cp := *item
	if item.UnitCost != nil {
		cost := *item.UnitCost
		cp.UnitCost = &cost
	}
	return &cp
}

func (r *takeoffRepository) Create(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyTakeoffItem(item)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.items[created.ID] = created
	return copyTakeoffItem(created), nil
}

func (r *takeoffRepository) CreateWithID(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID <= 0 {
		return nil, goerr.New("item ID must be set for re-insert", goerr.V("id", item.ID))
	}
	if _, exists := r.items[item.ID]; exists {
		return nil, goerr.New("item already exists", goerr.V("id", item.ID))
	}

	restored := copyTakeoffItem(item)
	restored.UpdatedAt = time.Now().UTC()
	if restored.ID >= r.nextID {
		r.nextID = restored.ID + 1
	}

	r.items[restored.ID] = restored
	return copyTakeoffItem(restored), nil
}

func (r *takeoffRepository) Get(ctx context.Context, id int64) (*model.TakeoffItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "takeoff item not found", goerr.V("id", id))
	}
	return copyTakeoffItem(item), nil
}

func (r *takeoffRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.TakeoffItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*model.TakeoffItem
	for _, item := range r.items {
		if item.ProjectID == projectID {
			items = append(items, copyTakeoffItem(item))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *takeoffRepository) Update(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.items[item.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "takeoff item not found", goerr.V("id", item.ID))
	}

	updated := copyTakeoffItem(item)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.items[updated.ID] = updated
	return copyTakeoffItem(updated), nil
}

func (r *takeoffRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return goerr.Wrap(ErrNotFound, "takeoff item not found", goerr.V("id", id))
	}
	delete(r.items, id)
	return nil
}
