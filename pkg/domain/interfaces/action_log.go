package interfaces

import (
	"context"

	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
)

// ActionLogRepository defines the interface for the append-only action log.
// Entries are never deleted; the only mutation is the status transition and
// the undo payloads written at execution time.
type ActionLogRepository interface {
	// Put appends a new log entry
	Put(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error)

	// Get retrieves a log entry by ID
	Get(ctx context.Context, id types.LogID) (*model.ActionLogEntry, error)

	// ListByProject retrieves log entries of a project, newest first
	ListByProject(ctx context.Context, projectID int64) ([]*model.ActionLogEntry, error)

	// Update persists a status transition on an existing entry
	Update(ctx context.Context, entry *model.ActionLogEntry) (*model.ActionLogEntry, error)
}
