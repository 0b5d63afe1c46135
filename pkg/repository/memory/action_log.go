package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
)

type actionLogRepository struct {
	mu      sync.RWMutex
	entries map[types.LogID]*model.ActionLogEntry
}

func newActionLogRepository() *actionLogRepository {
	return &actionLogRepository{
		entries: make(map[types.LogID]*model.ActionLogEntry),
	}
}

// copyLogEntry copies the entry and the containers that callers could
// mutate after a read. Action params are never mutated once built, so the
// action slice is copied shallowly.
func copyLogEntry(e *model.ActionLogEntry) *model.ActionLogEntry {
	cp := *e
	if e.Actions.Actions != nil {
		cp.Actions.Actions = make([]model.Action, len(e.Actions.Actions))
		copy(cp.Actions.Actions, e.Actions.Actions)
	}
	if e.UndoData != nil {
		cp.UndoData = make([]model.UndoPayload, len(e.UndoData))
		for i, u := range e.UndoData {
			cp.UndoData[i] = copyUndoPayload(u)
		}
	}
	return &cp
}

func copyUndoPayload(u model.UndoPayload) model.UndoPayload {
	cp := u
	if u.ItemIDs != nil {
		cp.ItemIDs = make([]int64, len(u.ItemIDs))
		copy(cp.ItemIDs, u.ItemIDs)
	}
	if u.RFIIDs != nil {
		cp.RFIIDs = make([]int64, len(u.RFIIDs))
		copy(cp.RFIIDs, u.RFIIDs)
	}
	if u.Items != nil {
		cp.Items = make([]*model.TakeoffItem, len(u.Items))
		for i, item := range u.Items {
			cp.Items[i] = copyTakeoffItem(item)
		}
	}
	if u.PriorDefaults != nil {
		cp.PriorDefaults = make(map[string]float64, len(u.PriorDefaults))
		for k, v := range u.PriorDefaults {
			cp.PriorDefaults[k] = v
		}
	}
	if u.PriorItem != nil {
		cp.PriorItem = copyTakeoffItem(u.PriorItem)
	}
	return cp
}

func (r *actionLogRepository) Put(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		return nil, goerr.New("log entry ID must be set")
	}
	if _, exists := r.entries[entry.ID]; exists {
		return nil, goerr.New("log entry already exists", goerr.V("id", entry.ID))
	}

	now := time.Now().UTC()
	created := copyLogEntry(entry)
	created.CreatedAt = now
	created.UpdatedAt = now

	r.entries[created.ID] = created
	return copyLogEntry(created), nil
}

func (r *actionLogRepository) Get(ctx context.Context, id types.LogID) (*model.ActionLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "log entry not found", goerr.V("id", id))
	}
	return copyLogEntry(entry), nil
}

func (r *actionLogRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.ActionLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*model.ActionLogEntry
	for _, entry := range r.entries {
		if entry.ProjectID == projectID {
			entries = append(entries, copyLogEntry(entry))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (r *actionLogRepository) Update(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.entries[entry.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "log entry not found", goerr.V("id", entry.ID))
	}

	updated := copyLogEntry(entry)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.entries[updated.ID] = updated
	return copyLogEntry(updated), nil
}
