package enums

import "fmt"

// JobStatus tracks the lifecycle of a posted job. Transitions move forward
// only, except cancellation which is reachable from any non-terminal state.
type JobStatus string

const (
	JobStatusOpen       JobStatus = "open"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

var validJobStatuses = []JobStatus{
	JobStatusOpen,
	JobStatusAssigned,
	JobStatusInProgress,
	JobStatusCompleted,
	JobStatusCancelled,
}

// jobStatusRank orders the forward-only progression.
var jobStatusRank = map[JobStatus]int{
	JobStatusOpen:       0,
	JobStatusAssigned:   1,
	JobStatusInProgress: 2,
	JobStatusCompleted:  3,
}

func (s JobStatus) String() string {
	return string(s)
}

func (s JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// CanTransitionTo reports whether the target status is reachable from s.
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	if !target.IsValid() || s.IsTerminal() {
		return false
	}
	if target == JobStatusCancelled {
		return true
	}
	from, ok := jobStatusRank[s]
	if !ok {
		return false
	}
	to, ok := jobStatusRank[target]
	if !ok {
		return false
	}
	return to > from
}

func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}
