package model

// ParseResult is the outcome of parsing one free-text command. Exactly one
// of Actions (non-empty), MissingInfo, or Error is meaningful:
//   - Success + Actions: at least one intent was recognized with enough detail
//   - !Success + MissingInfo: an intent was recognized but lacks detail
//   - !Success + Error: nothing was recognized at all
type ParseResult struct {
	Success     bool     `json:"success"`
	Actions     []Action `json:"actions,omitempty"`
	MissingInfo string   `json:"missing_info,omitempty"`
	Error       string   `json:"error,omitempty"`
}
