package domain

import "time"

// Interval is a half-open time window [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval from its bounds
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// IsValid returns true if the interval is non-empty (End > Start)
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Duration returns End - Start
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps returns true if the intervals share at least one instant.
// Half-open semantics: [10:00, 11:00) and [11:00, 12:00) do not overlap.
// The relation is symmetric. The same predicate is used in SQL:
// start_time < $end AND end_time > $start.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}
