package types

import "fmt"

// ActionKind identifies one executable command produced by the parser.
// The set is closed: adding a kind requires a parser detector, an executor
// handler and (if undoable) a reversal strategy.
type ActionKind string

const (
	ActionProjectCreate      ActionKind = "project.create"
	ActionProjectSetDefaults ActionKind = "project.set_defaults"

	ActionTakeoffAddItem        ActionKind = "takeoff.add_item"
	ActionTakeoffAddMultiple    ActionKind = "takeoff.add_multiple"
	ActionTakeoffUpdateItem     ActionKind = "takeoff.update_item"
	ActionTakeoffDeleteItem     ActionKind = "takeoff.delete_item"
	ActionTakeoffDeleteItems    ActionKind = "takeoff.delete_items"
	ActionTakeoffGenerateDrafts ActionKind = "takeoff.generate_drafts_from_assemblies"
	ActionTakeoffPromoteDrafts  ActionKind = "takeoff.promote_drafts"
	ActionTakeoffDeleteDrafts   ActionKind = "takeoff.delete_drafts"

	ActionLaborAddTaskLine ActionKind = "labor.add_task_line"

	ActionExportPDF    ActionKind = "export.pdf"
	ActionExportCSV    ActionKind = "export.csv"
	ActionQAShowIssues ActionKind = "qa.show_issues"
	ActionPlansOpen    ActionKind = "plans.open"
)

// AllActionKinds returns every valid action kind
func AllActionKinds() []ActionKind {
	return []ActionKind{
		ActionProjectCreate,
		ActionProjectSetDefaults,
		ActionTakeoffAddItem,
		ActionTakeoffAddMultiple,
		ActionTakeoffUpdateItem,
		ActionTakeoffDeleteItem,
		ActionTakeoffDeleteItems,
		ActionTakeoffGenerateDrafts,
		ActionTakeoffPromoteDrafts,
		ActionTakeoffDeleteDrafts,
		ActionLaborAddTaskLine,
		ActionExportPDF,
		ActionExportCSV,
		ActionQAShowIssues,
		ActionPlansOpen,
	}
}

// IsValid checks if the action kind is part of the closed vocabulary
func (k ActionKind) IsValid() bool {
	for _, kind := range AllActionKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// String returns the string representation of the action kind
func (k ActionKind) String() string {
	return string(k)
}

// ParseActionKind parses a string into an ActionKind
func ParseActionKind(s string) (ActionKind, error) {
	kind := ActionKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid action kind: %s", s)
	}
	return kind, nil
}
