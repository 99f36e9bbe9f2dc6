package domain

import "time"

// DateRange is an inclusive pair of calendar dates. Both endpoints count:
// a range covering a single day has Start == End.
//
// All comparisons are date-only. Dates are pinned to noon UTC by NewDate so
// that a date serialized as "2006-01-02" and later reconstructed can never
// slip across a day boundary in any timezone within UTC±12.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDate returns the given calendar day pinned to noon UTC.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// NormalizeDate strips the time-of-day component from t, pinning it to noon
// UTC. Applying it twice is a no-op.
func NormalizeDate(t time.Time) time.Time {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// NewDateRange builds a normalized range from two timestamps.
// The caller is responsible for start <= end; use IsValid to check.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: NormalizeDate(start), End: NormalizeDate(end)}
}

// IsZero reports whether the range has not been set at all.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// IsValid reports whether the range is set and Start <= End.
func (r DateRange) IsValid() bool {
	return !r.IsZero() && !r.Start.After(r.End)
}

// Overlaps reports whether r and other share at least one calendar day.
// Two inclusive ranges [s1,e1] and [s2,e2] overlap iff s1 <= e2 && s2 <= e1.
// The predicate is symmetric: r.Overlaps(o) == o.Overlaps(r).
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Contains reports whether the calendar day of t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := NormalizeDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Encloses reports whether other lies entirely within r.
func (r DateRange) Encloses(other DateRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Days returns the inclusive duration of the range in days.
// A same-day range counts as 1; a range of D..D+2 counts as 3.
func (r DateRange) Days() int {
	days := int(r.End.Sub(r.Start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}
