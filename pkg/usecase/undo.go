package usecase

import (
	"context"
	"fmt"

	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"github.com/takeline-lab/takeline/pkg/utils/logging"
)

const undoRefusedMessage = "This action cannot be undone"

type reversal func(ctx context.Context, uc *UseCases, payload model.UndoPayload) error

// reversals is the closed table of per-kind undo strategies. Each strategy
// is a pure replay of the payload captured at execution time; adding a new
// undoable action kind means adding one row here.
var reversals = map[types.ActionKind]reversal{
	types.ActionProjectCreate:         undoCreateProject,
	types.ActionProjectSetDefaults:    undoSetDefaults,
	types.ActionTakeoffAddItem:        undoDeleteCreatedItems,
	types.ActionTakeoffAddMultiple:    undoDeleteCreatedItems,
	types.ActionTakeoffGenerateDrafts: undoRemoveGeneratedDrafts,
	types.ActionLaborAddTaskLine:      undoDeleteCreatedItems,
	types.ActionTakeoffUpdateItem:     undoRestorePriorItem,
	types.ActionTakeoffDeleteItem:     undoReinsertItems,
	types.ActionTakeoffDeleteItems:    undoReinsertItems,
	types.ActionTakeoffPromoteDrafts:  undoDemoteItems,
}

// Undo reverses a previously applied command batch. Anything that cannot be
// undone gets the one refusal message: missing entries, failed batches,
// entries already undone, and entries that captured no undo state.
func (uc *UseCases) Undo(ctx context.Context, logID types.LogID) model.ExecutionResult {
	entry, err := uc.repo.ActionLog().Get(ctx, logID)
	if err != nil {
		return model.ExecutionResult{
			Success: false,
			Message: undoRefusedMessage,
		}
	}

	if !entry.Undoable() {
		return model.ExecutionResult{
			Success: false,
			Message: undoRefusedMessage,
		}
	}

	for _, payload := range entry.UndoData {
		strategy, ok := reversals[payload.Kind]
		if !ok {
			return model.ExecutionResult{
				Success: false,
				Message: undoRefusedMessage,
			}
		}
		if err := strategy(ctx, uc, payload); err != nil {
			return model.ExecutionResult{
				Success: false,
				Message: err.Error(),
			}
		}
	}

	entry.Status = types.LogStatusUndone
	if _, err := uc.repo.ActionLog().Update(ctx, entry); err != nil {
		return model.ExecutionResult{
			Success: false,
			Message: err.Error(),
		}
	}

	logging.From(ctx).Info("undid command batch", "log_id", logID, "payloads", len(entry.UndoData))

	return model.ExecutionResult{
		Success: true,
		Message: fmt.Sprintf("Undid %q", entry.CommandText),
	}
}

func undoCreateProject(ctx context.Context, uc *UseCases, payload model.UndoPayload) error {
	return uc.repo.Project().Delete(ctx, payload.ProjectID)
}

func undoSetDefaults(ctx context.Context, uc *UseCases, payload model.UndoPayload) error {
	project, err := uc.repo.Project().Get(ctx, payload.ProjectID)
	if err != nil {
		return err
	}
	project.ApplyDefaults(payload.PriorDefaults)
	_, err = uc.repo.Project().Update(ctx, project)
	return err
}

func undoDeleteCreatedItems(ctx context.Context, uc *UseCases, payload model.UndoPayload) error {
	for _, id := range payload.ItemIDs {
		if err := uc.repo.Takeoff().Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// undoRemoveGeneratedDrafts deletes the draft items and the RFIs a single
// resolver run created; both sides of that action are reversed together.
func undoRemoveGeneratedDrafts(ctx context.Context, uc *UseCases, payload model.UndoPayload) error {
	if err := undoDeleteCreatedItems(ctx, uc, payload); err != nil {
		return err
	}
	for _, id := range payload.RFIIDs {
		if err := uc.repo.RFI().Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func undoRestorePriorItem(ctx context.Context, uc *UseCases, payload model.UndoPayload) error {
	_, err := uc.repo.Takeoff().Update(ctx, payload.PriorItem)
	return err
}

func undoReinsertItems(ctx context.Context, uc *UseCases, payload model.UndoPayload) error {
	for _, item := range payload.Items {
		if _, err := uc.repo.Takeoff().CreateWithID(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func undoDemoteItems(ctx context.Context, uc *UseCases, payload model.UndoPayload) error {
	for _, id := range payload.ItemIDs {
		item, err := uc.repo.Takeoff().Get(ctx, id)
		if err != nil {
			return err
		}
		item.Draft = true
		if _, err := uc.repo.Takeoff().Update(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
