package interfaces

import (
	"context"

	"github.com/takeline-lab/takeline/pkg/domain/model"
)

// ProjectRepository defines the interface for Project data access
type ProjectRepository interface {
	// Create creates a new project with auto-generated ID
	Create(ctx context.Context, p *model.Project) (*model.Project, error)

	// Get retrieves a project by ID
	Get(ctx context.Context, id int64) (*model.Project, error)

	// List retrieves all projects ordered by creation time
	List(ctx context.Context) ([]*model.Project, error)

	// Update updates an existing project
	Update(ctx context.Context, p *model.Project) (*model.Project, error)

	// Delete deletes a project by ID
	Delete(ctx context.Context, id int64) error
}
