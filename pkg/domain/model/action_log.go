package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/takeline-lab/takeline/pkg/domain/types"
)

// ActionBatchSchemaVersion is bumped when the persisted batch shape changes.
// Older entries embed the version they were written with and stay replayable.
const ActionBatchSchemaVersion = 1

// ActionBatch is the versioned, persisted record of the actions in one
// executed command.
type ActionBatch struct {
	SchemaVersion int       `json:"schema_version"`
	ParserVersion string    `json:"parser_version"`
	ExecutedAt    time.Time `json:"executed_at"`
	Actions       []Action  `json:"actions"`
}

// ActionLogEntry is one append-only audit record per executed command batch.
// Status transitions: applied -> undone; failed and undone are terminal.
type ActionLogEntry struct {
	ID          types.LogID         `json:"id"`
	ProjectID   int64               `json:"project_id,omitempty"`
	Source      types.CommandSource `json:"source"`
	CommandText string              `json:"command_text"`
	Actions     ActionBatch         `json:"actions"`
	Status      types.LogStatus     `json:"status"`
	UndoData    []UndoPayload       `json:"undo_data,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewActionLogEntry builds an entry with a fresh ID, ready to persist.
func NewActionLogEntry(projectID int64, source types.CommandSource, commandText string, parserVersion string, actions []Action) *ActionLogEntry {
	return &ActionLogEntry{
		ID:          types.LogID(uuid.NewString()),
		ProjectID:   projectID,
		Source:      source,
		CommandText: commandText,
		Actions: ActionBatch{
			SchemaVersion: ActionBatchSchemaVersion,
			ParserVersion: parserVersion,
			ExecutedAt:    time.Now().UTC(),
			Actions:       actions,
		},
	}
}

// Undoable reports whether the entry can still be undone: it must be in an
// undoable status and carry at least one undo payload.
func (e *ActionLogEntry) Undoable() bool {
	return e.Status.CanUndo() && len(e.UndoData) > 0
}
