package types

// LogID identifies one action log entry (UUID string)
type LogID string

// String returns the string representation of the log ID
func (id LogID) String() string {
	return string(id)
}

// CommandSource records where a command text came from
type CommandSource string

const (
	SourceAPI CommandSource = "api"
	SourceCLI CommandSource = "cli"
)

// DeleteScope distinguishes "all" from "selected" in bulk draft operations
type DeleteScope string

const (
	ScopeAll      DeleteScope = "all"
	ScopeSelected DeleteScope = "selected"
)

// IsValid checks if the delete scope is valid
func (s DeleteScope) IsValid() bool {
	return s == ScopeAll || s == ScopeSelected
}

// RFIStatus represents the state of a clarification request
type RFIStatus string

const (
	RFIStatusOpen     RFIStatus = "open"
	RFIStatusAnswered RFIStatus = "answered"
)
