package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/model"
	"github.com/takeline-lab/takeline/pkg/domain/types"
	"github.com/takeline-lab/takeline/pkg/parser"
	"github.com/takeline-lab/takeline/pkg/utils/logging"
)

// ExecContext carries the execution-time state a command runs against:
// which project is active, which items the caller has selected, and where
// the command text came from.
type ExecContext struct {
	ProjectID       int64
	SelectedItemIDs []int64
	Source          types.CommandSource
}

type handler func(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult

// handlers is the closed dispatch table. Every action kind in the vocabulary
// has exactly one entry; an unknown kind is a failure result, not a panic.
var handlers = map[types.ActionKind]handler{
	types.ActionProjectCreate:         execCreateProject,
	types.ActionProjectSetDefaults:    execSetDefaults,
	types.ActionTakeoffAddItem:        execAddItem,
	types.ActionTakeoffAddMultiple:    execAddMultiple,
	types.ActionTakeoffUpdateItem:     execUpdateItem,
	types.ActionTakeoffDeleteItem:     execDeleteItem,
	types.ActionTakeoffDeleteItems:    execDeleteItems,
	types.ActionTakeoffGenerateDrafts: execGenerateDrafts,
	types.ActionTakeoffPromoteDrafts:  execPromoteDrafts,
	types.ActionTakeoffDeleteDrafts:   execDeleteDrafts,
	types.ActionLaborAddTaskLine:      execAddTaskLine,
	types.ActionExportPDF:             execExport,
	types.ActionExportCSV:             execExport,
	types.ActionQAShowIssues:          execShowIssues,
	types.ActionPlansOpen:             execOpenPlan,
}

// ExecuteAction runs a single validated action against the record store.
// Domain failures come back as a failure result with a human-readable
// message; Go errors never escape this layer for them.
func (uc *UseCases) ExecuteAction(ctx context.Context, action model.Action, ectx ExecContext) model.ExecutionResult {
	h, ok := handlers[action.Kind]
	if !ok {
		return model.Failure(action.Kind, fmt.Sprintf("Unknown action %q", action.Kind))
	}
	return h(ctx, uc, action.Params, ectx)
}

// ExecuteActions runs a batch strictly sequentially, aggregates every
// result, and records exactly one log entry for the batch. A failed action
// does not roll back earlier ones; the entry's status records the outcome.
func (uc *UseCases) ExecuteActions(ctx context.Context, commandText string, actions []model.Action, ectx ExecContext) ([]model.ExecutionResult, types.LogID, error) {
	results := make([]model.ExecutionResult, 0, len(actions))
	var undoData []model.UndoPayload
	var firstFailure string

	for _, action := range actions {
		res := uc.ExecuteAction(ctx, action, ectx)
		results = append(results, res)

		if res.Success {
			// later actions in the same command may address the project
			// created by an earlier one
			if action.Kind == types.ActionProjectCreate && res.Undo != nil {
				ectx.ProjectID = res.Undo.ProjectID
			}
			if res.Undoable && res.Undo != nil {
				undoData = append(undoData, *res.Undo)
			}
		} else if firstFailure == "" {
			firstFailure = res.Message
		}
	}

	entry := model.NewActionLogEntry(ectx.ProjectID, ectx.Source, commandText, parser.Version, actions)
	if firstFailure == "" {
		entry.Status = types.LogStatusApplied
		entry.UndoData = undoData
	} else {
		entry.Status = types.LogStatusFailed
	}

	stored, err := uc.repo.ActionLog().Put(ctx, entry)
	if err != nil {
		return results, "", goerr.Wrap(err, "failed to record action log entry", goerr.V(LogIDKey, entry.ID))
	}

	logging.From(ctx).Info("executed command batch",
		"log_id", stored.ID,
		"actions", len(actions),
		"status", stored.Status,
	)

	return results, stored.ID, nil
}

func requireProject(ectx ExecContext, kind types.ActionKind) (int64, *model.ExecutionResult) {
	if ectx.ProjectID <= 0 {
		res := model.Failure(kind, "No active project. Create or select a project first.")
		return 0, &res
	}
	return ectx.ProjectID, nil
}

func execCreateProject(ctx context.Context, uc *UseCases, params model.ActionParams, _ ExecContext) model.ExecutionResult {
	p := params.(*model.CreateProjectParams)

	created, err := uc.repo.Project().Create(ctx, &model.Project{
		Name: p.Name,
		Type: p.ProjectType,
	})
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Created project %q (#%d)", created.Name, created.ID),
		Data:       created,
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:      params.Kind(),
			ProjectID: created.ID,
		},
		NavigateTo: fmt.Sprintf("/projects/%d", created.ID),
	}
}

func execSetDefaults(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.SetDefaultsParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	// capture only the fields the action touches, so undo restores exactly
	// what changed
	prior := make(map[string]float64)
	next := make(map[string]float64)
	var set []string

	if p.TaxPercent != nil {
		prior["tax_percent"] = project.TaxPercent
		next["tax_percent"] = *p.TaxPercent
		set = append(set, fmt.Sprintf("tax %.4g%%", *p.TaxPercent))
	}
	if p.MarkupPercent != nil {
		prior["markup_percent"] = project.MarkupPercent
		next["markup_percent"] = *p.MarkupPercent
		set = append(set, fmt.Sprintf("markup %.4g%%", *p.MarkupPercent))
	}
	if p.LaborBurdenPercent != nil {
		prior["labor_burden_percent"] = project.LaborBurdenPercent
		next["labor_burden_percent"] = *p.LaborBurdenPercent
		set = append(set, fmt.Sprintf("labor burden %.4g%%", *p.LaborBurdenPercent))
	}
	if p.WastePercent != nil {
		prior["waste_percent"] = project.WastePercent
		next["waste_percent"] = *p.WastePercent
		set = append(set, fmt.Sprintf("waste %.4g%%", *p.WastePercent))
	}

	project.ApplyDefaults(next)
	if _, err := uc.repo.Project().Update(ctx, project); err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    "Set project defaults: " + strings.Join(set, ", "),
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:          params.Kind(),
			ProjectID:     project.ID,
			PriorDefaults: prior,
		},
	}
}

func execAddItem(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.AddItemParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	created, err := uc.repo.Takeoff().Create(ctx, &model.TakeoffItem{
		ProjectID:   projectID,
		Category:    p.Category,
		Description: p.Description,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		UnitCost:    p.UnitCost,
	})
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Added %s: %s %s", created.Description, formatQuantity(created.Quantity), created.Unit),
		Data:       created,
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:    params.Kind(),
			ItemIDs: []int64{created.ID},
		},
	}
}

func execAddMultiple(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.AddMultipleParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	var created []*model.TakeoffItem
	var itemIDs []int64
	for i := range p.Items {
		item := &p.Items[i]
		stored, err := uc.repo.Takeoff().Create(ctx, &model.TakeoffItem{
			ProjectID:   projectID,
			Category:    item.Category,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitCost:    item.UnitCost,
		})
		if err != nil {
			return model.Failure(params.Kind(), err.Error())
		}
		created = append(created, stored)
		itemIDs = append(itemIDs, stored.ID)
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Added %d items", len(created)),
		Data:       created,
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:    params.Kind(),
			ItemIDs: itemIDs,
		},
	}
}

// matchItem finds the single non-draft item whose description contains the
// fragment. Zero or multiple matches are reported to the caller by name.
func matchItem(ctx context.Context, uc *UseCases, projectID int64, fragment string) (*model.TakeoffItem, string) {
	items, err := uc.repo.Takeoff().ListByProject(ctx, projectID)
	if err != nil {
		return nil, err.Error()
	}

	f := strings.ToLower(fragment)
	var matched []*model.TakeoffItem
	for _, item := range items {
		if item.Draft {
			continue
		}
		if strings.Contains(strings.ToLower(item.Description), f) {
			matched = append(matched, item)
		}
	}

	switch len(matched) {
	case 0:
		return nil, fmt.Sprintf("No item matching %q found", fragment)
	case 1:
		return matched[0], ""
	default:
		names := make([]string, len(matched))
		for i, m := range matched {
			names[i] = fmt.Sprintf("%q (#%d)", m.Description, m.ID)
		}
		return nil, fmt.Sprintf("%q matches %d items: %s. Be more specific.", fragment, len(matched), strings.Join(names, ", "))
	}
}

func execUpdateItem(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.UpdateItemParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	item, problem := matchItem(ctx, uc, projectID, p.Match)
	if problem != "" {
		return model.Failure(params.Kind(), problem)
	}

	prior := *item
	if item.UnitCost != nil {
		cost := *item.UnitCost
		prior.UnitCost = &cost
	}

	var changed []string
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
		changed = append(changed, fmt.Sprintf("quantity to %s", formatQuantity(*p.Quantity)))
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
		changed = append(changed, fmt.Sprintf("unit to %s", *p.Unit))
	}
	if p.UnitCost != nil {
		cost := *p.UnitCost
		item.UnitCost = &cost
		changed = append(changed, fmt.Sprintf("price to $%.2f", cost))
	}

	updated, err := uc.repo.Takeoff().Update(ctx, item)
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Updated %s: %s", updated.Description, strings.Join(changed, ", ")),
		Data:       updated,
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:      params.Kind(),
			PriorItem: &prior,
		},
	}
}

func execDeleteItem(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.DeleteItemParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	item, problem := matchItem(ctx, uc, projectID, p.Match)
	if problem != "" {
		return model.Failure(params.Kind(), problem)
	}

	if err := uc.repo.Takeoff().Delete(ctx, item.ID); err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Deleted %s", item.Description),
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:  params.Kind(),
			Items: []*model.TakeoffItem{item},
		},
	}
}

func execDeleteItems(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.DeleteItemsParams)

	_, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	var snapshots []*model.TakeoffItem
	for _, id := range p.ItemIDs {
		item, err := uc.repo.Takeoff().Get(ctx, id)
		if err != nil {
			return model.Failure(params.Kind(), err.Error())
		}
		snapshots = append(snapshots, item)
	}

	for _, item := range snapshots {
		if err := uc.repo.Takeoff().Delete(ctx, item.ID); err != nil {
			return model.Failure(params.Kind(), err.Error())
		}
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Deleted %d items", len(snapshots)),
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:  params.Kind(),
			Items: snapshots,
		},
	}
}

func execGenerateDrafts(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.GenerateDraftsParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	if uc.catalog == nil {
		return model.Failure(params.Kind(), ErrNoAssemblyCatalog.Error())
	}

	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	resolved, err := uc.ResolveAssemblies(ctx, projectID, project.Type, p.Assemblies, p.Variables)
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	if len(resolved.Matched) == 0 {
		return model.Failure(params.Kind(),
			fmt.Sprintf("No assemblies matching %s for this project type", strings.Join(p.Assemblies, ", ")))
	}

	msg := fmt.Sprintf("Created %d draft items", len(resolved.DraftIDs))
	if len(resolved.RFIIDs) > 0 {
		msg += fmt.Sprintf(" and %d RFIs for missing measurements", len(resolved.RFIIDs))
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    msg,
		Data:       resolved,
		Undoable:   len(resolved.DraftIDs) > 0 || len(resolved.RFIIDs) > 0,
		Undo: func() *model.UndoPayload {
			if len(resolved.DraftIDs) == 0 && len(resolved.RFIIDs) == 0 {
				return nil
			}
			return &model.UndoPayload{
				Kind:    params.Kind(),
				ItemIDs: resolved.DraftIDs,
				RFIIDs:  resolved.RFIIDs,
			}
		}(),
	}
}

func execPromoteDrafts(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.PromoteDraftsParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	targets, problem := resolveDraftTargets(ctx, uc, projectID, p.Scope, p.ItemIDs, ectx)
	if problem != "" {
		return model.Failure(params.Kind(), problem)
	}

	var promoted []int64
	for _, item := range targets {
		item.Draft = false
		if _, err := uc.repo.Takeoff().Update(ctx, item); err != nil {
			return model.Failure(params.Kind(), err.Error())
		}
		promoted = append(promoted, item.ID)
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Promoted %d draft items", len(promoted)),
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:    params.Kind(),
			ItemIDs: promoted,
		},
	}
}

func execDeleteDrafts(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.DeleteDraftsParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	targets, problem := resolveDraftTargets(ctx, uc, projectID, p.Scope, p.ItemIDs, ectx)
	if problem != "" {
		return model.Failure(params.Kind(), problem)
	}

	for _, item := range targets {
		if err := uc.repo.Takeoff().Delete(ctx, item.ID); err != nil {
			return model.Failure(params.Kind(), err.Error())
		}
	}

	// deleting every draft in scope is a criteria-based bulk operation, so
	// it is declared non-undoable rather than snapshotting an unbounded set
	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Deleted %d draft items", len(targets)),
		Undoable:   false,
	}
}

// resolveDraftTargets picks the draft items an all/selected scoped action
// applies to. Selection comes from the params when present, else from the
// caller's current selection.
func resolveDraftTargets(ctx context.Context, uc *UseCases, projectID int64, scope types.DeleteScope, itemIDs []int64, ectx ExecContext) ([]*model.TakeoffItem, string) {
	if scope == types.ScopeSelected {
		ids := itemIDs
		if len(ids) == 0 {
			ids = ectx.SelectedItemIDs
		}
		if len(ids) == 0 {
			return nil, "No drafts selected. Select draft items or use \"all\"."
		}

		var targets []*model.TakeoffItem
		for _, id := range ids {
			item, err := uc.repo.Takeoff().Get(ctx, id)
			if err != nil {
				return nil, err.Error()
			}
			if !item.Draft {
				return nil, fmt.Sprintf("Item #%d is not a draft", id)
			}
			targets = append(targets, item)
		}
		return targets, ""
	}

	items, err := uc.repo.Takeoff().ListByProject(ctx, projectID)
	if err != nil {
		return nil, err.Error()
	}

	var targets []*model.TakeoffItem
	for _, item := range items {
		if item.Draft {
			targets = append(targets, item)
		}
	}
	if len(targets) == 0 {
		return nil, "No draft items in this project"
	}
	return targets, ""
}

func execAddTaskLine(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.AddTaskLineParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	created, err := uc.repo.Takeoff().Create(ctx, &model.TakeoffItem{
		ProjectID:   projectID,
		Category:    "Labor",
		Description: p.Description,
		Quantity:    p.Hours,
		Unit:        "HR",
		UnitCost:    p.Rate,
	})
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Added labor task: %s, %s hours", created.Description, formatQuantity(created.Quantity)),
		Data:       created,
		Undoable:   true,
		Undo: &model.UndoPayload{
			Kind:    params.Kind(),
			ItemIDs: []int64{created.ID},
		},
	}
}

func execExport(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	p := params.(*model.ExportParams)

	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	target := fmt.Sprintf("/projects/%d/export?format=%s", projectID, p.Format)
	if p.Categorized {
		target += "&categorized=true"
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Preparing %s export", strings.ToUpper(p.Format)),
		Data:       map[string]any{"format": p.Format, "categorized": p.Categorized},
		NavigateTo: target,
	}
}

// IssueSummary is the qa.show_issues payload: open clarification requests
// plus takeoff lines that cannot price out yet.
type IssueSummary struct {
	OpenRFIs      []*model.RFI         `json:"open_rfis"`
	UnpricedItems []*model.TakeoffItem `json:"unpriced_items"`
	ZeroQuantity  []*model.TakeoffItem `json:"zero_quantity_items"`
}

func (s *IssueSummary) Total() int {
	return len(s.OpenRFIs) + len(s.UnpricedItems) + len(s.ZeroQuantity)
}

func execShowIssues(ctx context.Context, uc *UseCases, params model.ActionParams, ectx ExecContext) model.ExecutionResult {
	projectID, fail := requireProject(ectx, params.Kind())
	if fail != nil {
		return *fail
	}

	rfis, err := uc.repo.RFI().ListByProject(ctx, projectID)
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}
	items, err := uc.repo.Takeoff().ListByProject(ctx, projectID)
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	summary := &IssueSummary{}
	for _, rfi := range rfis {
		if rfi.Status == types.RFIStatusOpen {
			summary.OpenRFIs = append(summary.OpenRFIs, rfi)
		}
	}
	for _, item := range items {
		if item.Draft {
			continue
		}
		if item.UnitCost == nil {
			summary.UnpricedItems = append(summary.UnpricedItems, item)
		}
		if item.Quantity == 0 {
			summary.ZeroQuantity = append(summary.ZeroQuantity, item)
		}
	}

	msg := fmt.Sprintf("%d open issues: %d RFIs, %d unpriced items, %d zero-quantity items",
		summary.Total(), len(summary.OpenRFIs), len(summary.UnpricedItems), len(summary.ZeroQuantity))
	if summary.Total() == 0 {
		msg = "No open issues"
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    msg,
		Data:       summary,
	}
}

func execOpenPlan(ctx context.Context, uc *UseCases, params model.ActionParams, _ ExecContext) model.ExecutionResult {
	p := params.(*model.OpenPlanParams)

	if uc.plans == nil {
		return model.Failure(params.Kind(), ErrPlansUnavailable.Error())
	}

	url, err := uc.plans.Resolve(ctx, p.Name)
	if err != nil {
		return model.Failure(params.Kind(), err.Error())
	}

	return model.ExecutionResult{
		Success:    true,
		ActionKind: params.Kind(),
		Message:    fmt.Sprintf("Opening plan %q", p.Name),
		NavigateTo: url,
	}
}

func formatQuantity(q float64) string {
	s := fmt.Sprintf("%.2f", q)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
