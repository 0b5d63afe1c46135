package model

// PriceCandidate is one ranked price suggestion returned by the external
// pricing service.
type PriceCandidate struct {
	Description string  `json:"description"`
	UnitCost    float64 `json:"unit_cost"`
	Unit        string  `json:"unit,omitempty"`
	Source      string  `json:"source"`
	Confidence  float64 `json:"confidence"`
}
