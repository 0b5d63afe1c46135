package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrNoActiveProject = errors.New("no active project")
	ErrLogNotFound     = errors.New("log entry not found")
	ErrNotUndoable     = errors.New("log entry cannot be undone")

	ErrPricingUnavailable = errors.New("pricing service is not configured")
	ErrPlansUnavailable   = errors.New("plan store is not configured")
	ErrNoAssemblyCatalog  = errors.New("assembly catalog is not configured")
)

// Context keys for error values
const (
	ProjectIDKey = "project_id"
	LogIDKey     = "log_id"
)
