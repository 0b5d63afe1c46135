package types

import "fmt"

// LogStatus represents the lifecycle state of an action log entry.
// Transitions: applied -> undone. failed and undone are terminal.
type LogStatus string

const (
	LogStatusApplied LogStatus = "applied"
	LogStatusFailed  LogStatus = "failed"
	LogStatusUndone  LogStatus = "undone"
)

// AllLogStatuses returns all valid log statuses
func AllLogStatuses() []LogStatus {
	return []LogStatus{
		LogStatusApplied,
		LogStatusFailed,
		LogStatusUndone,
	}
}

// IsValid checks if the log status is valid
func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusApplied, LogStatusFailed, LogStatusUndone:
		return true
	default:
		return false
	}
}

// CanUndo reports whether an entry in this status may still be undone
func (s LogStatus) CanUndo() bool {
	return s == LogStatusApplied
}

// String returns the string representation of the log status
func (s LogStatus) String() string {
	return string(s)
}

// ParseLogStatus parses a string into a LogStatus
func ParseLogStatus(s string) (LogStatus, error) {
	status := LogStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid log status: %s", s)
	}
	return status, nil
}
