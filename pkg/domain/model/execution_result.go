package model

import "github.com/takeline-lab/takeline/pkg/domain/types"

// ExecutionResult is the uniform outcome of executing one action. Message is
// always human-readable, including on failure. Undo is present only when
// Undoable is true.
type ExecutionResult struct {
	Success    bool             `json:"success"`
	ActionKind types.ActionKind `json:"action_kind"`
	Message    string           `json:"message"`
	Data       any              `json:"data,omitempty"`
	Undoable   bool             `json:"undoable"`
	Undo       *UndoPayload     `json:"undo,omitempty"`
	NavigateTo string           `json:"navigate_to,omitempty"`
}

// Failure builds a failed result with a human-readable message.
func Failure(kind types.ActionKind, message string) ExecutionResult {
	return ExecutionResult{
		Success:    false,
		ActionKind: kind,
		Message:    message,
	}
}

// UndoPayload is the minimal state captured at execution time that suffices
// to reverse one action's effect. The Kind tag selects the reversal strategy;
// only the fields that strategy reads are populated.
type UndoPayload struct {
	Kind types.ActionKind `json:"kind"`

	// ProjectID of a just-created project, to be deleted on undo
	ProjectID int64 `json:"project_id,omitempty"`

	// ItemIDs of just-created or just-promoted items
	ItemIDs []int64 `json:"item_ids,omitempty"`

	// RFIIDs of RFIs opened alongside generated drafts
	RFIIDs []int64 `json:"rfi_ids,omitempty"`

	// Items holds full snapshots to re-insert on undo of a delete
	Items []*TakeoffItem `json:"items,omitempty"`

	// PriorDefaults holds field values to restore on undo of set_defaults
	PriorDefaults map[string]float64 `json:"prior_defaults,omitempty"`

	// PriorItem holds the pre-update snapshot for update_item
	PriorItem *TakeoffItem `json:"prior_item,omitempty"`
}
