package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/takeline-lab/takeline/pkg/domain/types"
)

// CreateProjectParams creates a new project record
type CreateProjectParams struct {
	Name        string `json:"name"`
	ProjectType string `json:"project_type,omitempty"`
}

func (p *CreateProjectParams) Kind() types.ActionKind { return types.ActionProjectCreate }

func (p *CreateProjectParams) Validate() error {
	if p.Name == "" {
		return goerr.New("project name is required")
	}
	return nil
}

// SetDefaultsParams updates numeric project defaults. Nil fields are left
// untouched; a single command setting several fields stays a single action.
type SetDefaultsParams struct {
	TaxPercent         *float64 `json:"tax_percent,omitempty"`
	MarkupPercent      *float64 `json:"markup_percent,omitempty"`
	LaborBurdenPercent *float64 `json:"labor_burden_percent,omitempty"`
	WastePercent       *float64 `json:"waste_percent,omitempty"`
}

func (p *SetDefaultsParams) Kind() types.ActionKind { return types.ActionProjectSetDefaults }

func (p *SetDefaultsParams) Validate() error {
	if p.TaxPercent == nil && p.MarkupPercent == nil && p.LaborBurdenPercent == nil && p.WastePercent == nil {
		return goerr.New("at least one default field is required")
	}
	return nil
}

// AddItemParams adds a single takeoff line item
type AddItemParams struct {
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
	UnitCost    *float64 `json:"unit_cost,omitempty"`
	Category    string   `json:"category"`
}

func (p *AddItemParams) Kind() types.ActionKind { return types.ActionTakeoffAddItem }

func (p *AddItemParams) Validate() error {
	if p.Description == "" {
		return goerr.New("item description is required")
	}
	if p.Quantity <= 0 {
		return goerr.New("item quantity must be positive", goerr.V("quantity", p.Quantity))
	}
	if p.Unit == "" {
		return goerr.New("item unit is required")
	}
	return nil
}

// AddMultipleParams adds several takeoff line items in one action
type AddMultipleParams struct {
	Items []AddItemParams `json:"items"`
}

func (p *AddMultipleParams) Kind() types.ActionKind { return types.ActionTakeoffAddMultiple }

func (p *AddMultipleParams) Validate() error {
	if len(p.Items) == 0 {
		return goerr.New("at least one item is required")
	}
	for i := range p.Items {
		if err := p.Items[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid item", goerr.V("index", i))
		}
	}
	return nil
}

// UpdateItemParams updates an existing item matched by description fragment
type UpdateItemParams struct {
	Match    string   `json:"match"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
	UnitCost *float64 `json:"unit_cost,omitempty"`
}

func (p *UpdateItemParams) Kind() types.ActionKind { return types.ActionTakeoffUpdateItem }

func (p *UpdateItemParams) Validate() error {
	if p.Match == "" {
		return goerr.New("item match text is required")
	}
	if p.Quantity == nil && p.Unit == nil && p.UnitCost == nil {
		return goerr.New("at least one field to update is required")
	}
	return nil
}

// DeleteItemParams deletes a single item matched by description fragment
type DeleteItemParams struct {
	Match string `json:"match"`
}

func (p *DeleteItemParams) Kind() types.ActionKind { return types.ActionTakeoffDeleteItem }

func (p *DeleteItemParams) Validate() error {
	if p.Match == "" {
		return goerr.New("item match text is required")
	}
	return nil
}

// DeleteItemsParams deletes several items by ID
type DeleteItemsParams struct {
	ItemIDs []int64 `json:"item_ids"`
}

func (p *DeleteItemsParams) Kind() types.ActionKind { return types.ActionTakeoffDeleteItems }

func (p *DeleteItemsParams) Validate() error {
	if len(p.ItemIDs) == 0 {
		return goerr.New("at least one item ID is required")
	}
	return nil
}

// GenerateDraftsParams drives the assembly resolver
type GenerateDraftsParams struct {
	Assemblies []string           `json:"assemblies"`
	Variables  map[string]float64 `json:"variables,omitempty"`
}

func (p *GenerateDraftsParams) Kind() types.ActionKind { return types.ActionTakeoffGenerateDrafts }

func (p *GenerateDraftsParams) Validate() error {
	if len(p.Assemblies) == 0 {
		return goerr.New("at least one assembly reference is required")
	}
	return nil
}

// PromoteDraftsParams promotes draft items to billable line items
type PromoteDraftsParams struct {
	Scope   types.DeleteScope `json:"scope"`
	ItemIDs []int64           `json:"item_ids,omitempty"`
}

func (p *PromoteDraftsParams) Kind() types.ActionKind { return types.ActionTakeoffPromoteDrafts }

func (p *PromoteDraftsParams) Validate() error {
	if !p.Scope.IsValid() {
		return goerr.New("invalid scope", goerr.V("scope", p.Scope))
	}
	// selected scope without IDs is legal at parse time; the executor fills
	// the selection from its context or fails with a descriptive message
	return nil
}

// DeleteDraftsParams deletes draft items
type DeleteDraftsParams struct {
	Scope   types.DeleteScope `json:"scope"`
	ItemIDs []int64           `json:"item_ids,omitempty"`
}

func (p *DeleteDraftsParams) Kind() types.ActionKind { return types.ActionTakeoffDeleteDrafts }

func (p *DeleteDraftsParams) Validate() error {
	if !p.Scope.IsValid() {
		return goerr.New("invalid scope", goerr.V("scope", p.Scope))
	}
	return nil
}

// AddTaskLineParams adds a labor task line (HR unit, Labor category)
type AddTaskLineParams struct {
	Description string   `json:"description"`
	Hours       float64  `json:"hours"`
	Rate        *float64 `json:"rate,omitempty"`
}

func (p *AddTaskLineParams) Kind() types.ActionKind { return types.ActionLaborAddTaskLine }

func (p *AddTaskLineParams) Validate() error {
	if p.Description == "" {
		return goerr.New("task description is required")
	}
	if p.Hours <= 0 {
		return goerr.New("task hours must be positive", goerr.V("hours", p.Hours))
	}
	return nil
}

// ExportParams requests a PDF or CSV export from the external export surface
type ExportParams struct {
	Format      string `json:"format"`
	Categorized bool   `json:"categorized,omitempty"`
}

func (p *ExportParams) Kind() types.ActionKind {
	if p.Format == "csv" {
		return types.ActionExportCSV
	}
	return types.ActionExportPDF
}

func (p *ExportParams) Validate() error {
	if p.Format != "pdf" && p.Format != "csv" {
		return goerr.New("export format must be pdf or csv", goerr.V("format", p.Format))
	}
	return nil
}

// ShowIssuesParams requests an open-issues summary
type ShowIssuesParams struct{}

func (p *ShowIssuesParams) Kind() types.ActionKind { return types.ActionQAShowIssues }

func (p *ShowIssuesParams) Validate() error { return nil }

// OpenPlanParams opens a named plan file
type OpenPlanParams struct {
	Name string `json:"name"`
}

func (p *OpenPlanParams) Kind() types.ActionKind { return types.ActionPlansOpen }

func (p *OpenPlanParams) Validate() error {
	if p.Name == "" {
		return goerr.New("plan name is required")
	}
	return nil
}
