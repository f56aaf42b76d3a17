package enums

import "fmt"

// AssignmentStatus tracks a job-agent link. The same row covers both formal
// assignments and informally expressed interest.
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "assigned"
	AssignmentStatusAccepted   AssignmentStatus = "accepted"
	AssignmentStatusDeclined   AssignmentStatus = "declined"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusNoShow     AssignmentStatus = "no_show"
	AssignmentStatusInterested AssignmentStatus = "interested"
)

var validAssignmentStatuses = []AssignmentStatus{
	AssignmentStatusAssigned,
	AssignmentStatusAccepted,
	AssignmentStatusDeclined,
	AssignmentStatusCompleted,
	AssignmentStatusNoShow,
	AssignmentStatusInterested,
}

func (s AssignmentStatus) String() string {
	return string(s)
}

func (s AssignmentStatus) IsValid() bool {
	for _, candidate := range validAssignmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Blocks reports whether this status holds the agent's calendar. Only formal
// assignments and acceptances make the agent unavailable for overlapping
// windows; interest, declines, no-shows, and finished work do not.
func (s AssignmentStatus) Blocks() bool {
	return s == AssignmentStatusAssigned || s == AssignmentStatusAccepted
}

// CountsTowardCapacity reports whether the row consumes one of the job's
// agents_needed slots.
func (s AssignmentStatus) CountsTowardCapacity() bool {
	return s != AssignmentStatusDeclined
}

// StillLinked reports whether the row still ties the agent to the job.
// Declined and no-show rows are dead links; anything else keeps the agent out
// of the job's candidate pool.
func (s AssignmentStatus) StillLinked() bool {
	return s != AssignmentStatusDeclined && s != AssignmentStatusNoShow
}

func ParseAssignmentStatus(value string) (AssignmentStatus, error) {
	for _, candidate := range validAssignmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid assignment status %q", value)
}
