package types

import "github.com/m-mizutani/goerr/v2"

// ActionStatus represents the progress of a 5W2H action plan
type ActionStatus string

const (
	ActionStatusNotStarted ActionStatus = "not_started"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusDone       ActionStatus = "done"
)

// AllActionStatuses returns all valid action statuses
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusNotStarted,
		ActionStatusInProgress,
		ActionStatusDone,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusNotStarted, ActionStatusInProgress, ActionStatusDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", goerr.New("invalid action status", goerr.V("status", s), goerr.T(ErrTagValidation))
	}
	return status, nil
}
