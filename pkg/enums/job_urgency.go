package enums

import "fmt"

// JobUrgency captures how quickly a client needs coverage.
type JobUrgency string

const (
	JobUrgencyLow    JobUrgency = "low"
	JobUrgencyNormal JobUrgency = "normal"
	JobUrgencyHigh   JobUrgency = "high"
	JobUrgencyUrgent JobUrgency = "urgent"
)

var validJobUrgencies = []JobUrgency{
	JobUrgencyLow,
	JobUrgencyNormal,
	JobUrgencyHigh,
	JobUrgencyUrgent,
}

func (u JobUrgency) String() string {
	return string(u)
}

func (u JobUrgency) IsValid() bool {
	for _, candidate := range validJobUrgencies {
		if candidate == u {
			return true
		}
	}
	return false
}

func ParseJobUrgency(value string) (JobUrgency, error) {
	for _, candidate := range validJobUrgencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job urgency %q", value)
}
