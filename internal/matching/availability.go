package matching

import "time"

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Booking is an existing calendar hold on an agent: the window of a job the
// agent is assigned to or has accepted.
type Booking struct {
	Start time.Time
	End   time.Time
}

// IsAvailable reports whether none of the agent's bookings overlap the target
// window [start, end).
func IsAvailable(start, end time.Time, bookings []Booking) bool {
	for _, b := range bookings {
		if Overlaps(b.Start, b.End, start, end) {
			return false
		}
	}
	return true
}
