package model

import (
	"time"

	"github.com/takeline-lab/takeline/pkg/domain/types"
)

// RFI is a clarification request raised when a required measurement variable
// is unavailable to complete a quantity calculation.
type RFI struct {
	ID        int64           `json:"id"`
	ProjectID int64           `json:"project_id"`
	Trade     string          `json:"trade"`
	Question  string          `json:"question"`
	Status    types.RFIStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
