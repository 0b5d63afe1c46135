package model

import "time"

// Project is an estimating project record. The numeric defaults are applied
// project-wide by the external pricing/export surfaces.
type Project struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type,omitempty"`
	TaxPercent         float64   `json:"tax_percent"`
	MarkupPercent      float64   `json:"markup_percent"`
	LaborBurdenPercent float64   `json:"labor_burden_percent"`
	WastePercent       float64   `json:"waste_percent"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Defaults returns the numeric default fields by name, used to capture
// prior values for undo.
func (p *Project) Defaults() map[string]float64 {
	return map[string]float64{
		"tax_percent":          p.TaxPercent,
		"markup_percent":       p.MarkupPercent,
		"labor_burden_percent": p.LaborBurdenPercent,
		"waste_percent":        p.WastePercent,
	}
}

// ApplyDefaults sets the numeric default fields present in values.
func (p *Project) ApplyDefaults(values map[string]float64) {
	if v, ok := values["tax_percent"]; ok {
		p.TaxPercent = v
	}
	if v, ok := values["markup_percent"]; ok {
		p.MarkupPercent = v
	}
	if v, ok := values["labor_burden_percent"]; ok {
		p.LaborBurdenPercent = v
	}
	if v, ok := values["waste_percent"]; ok {
		p.WastePercent = v
	}
}
