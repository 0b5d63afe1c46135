package model

import "time"

// TakeoffItem is one material or labor line item. Draft distinguishes a
// computed, unreviewed quantity from a finalized billable line: resolver
// output always enters as Draft=true and promotion is a separate action.
type TakeoffItem struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	UnitCost    *float64  `json:"unit_cost,omitempty"`
	Draft       bool      `json:"draft"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
