package interfaces

import (
	"context"

	"github.com/takeline-lab/takeline/pkg/domain/model"
)

// TakeoffRepository defines the interface for TakeoffItem data access
type TakeoffRepository interface {
	// Create creates a new item with auto-generated ID
	Create(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error)

	// CreateWithID re-inserts an item preserving its original ID. Used by
	// undo to restore a just-deleted record exactly.
	CreateWithID(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error)

	// Get retrieves an item by ID
	Get(ctx context.Context, id int64) (*model.TakeoffItem, error)

	// ListByProject retrieves all items of a project ordered by creation time
	ListByProject(ctx context.Context, projectID int64) ([]*model.TakeoffItem, error)

	// Update updates an existing item
	Update(ctx context.Context, item *model.TakeoffItem) (*model.TakeoffItem, error)

	// Delete deletes an item by ID
	Delete(ctx context.Context, id int64) error
}
