package interfaces

import (
	"context"

	"github.com/takeline-lab/takeline/pkg/domain/model"
)

// RFIRepository defines the interface for RFI data access
type RFIRepository interface {
	// Create creates a new RFI with auto-generated ID
	Create(ctx context.Context, rfi *model.RFI) (*model.RFI, error)

	// Get retrieves an RFI by ID
	Get(ctx context.Context, id int64) (*model.RFI, error)

	// ListByProject retrieves all RFIs of a project ordered by creation time
	ListByProject(ctx context.Context, projectID int64) ([]*model.RFI, error)

	// Update updates an existing RFI
	Update(ctx context.Context, rfi *model.RFI) (*model.RFI, error)

	// Delete deletes an RFI by ID
	Delete(ctx context.Context, id int64) error
}
