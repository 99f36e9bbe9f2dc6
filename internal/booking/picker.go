// Package booking implements the reservation authoring core: the calendar
// range picker and the four-stage reservation flow.
package booking

import (
	"fmt"
	"time"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// PickerState is the current phase of a calendar range selection.
type PickerState int

const (
	// Empty means no date has been picked yet.
	Empty PickerState = iota
	// StartPicked means the start date is set and the picker is waiting for
	// an end date.
	StartPicked
	// RangeComplete means both endpoints are set. The next click starts a
	// fresh selection.
	RangeComplete
)

// String returns a readable state name for logs and test failures.
func (s PickerState) String() string {
	switch s {
	case Empty:
		return "empty"
	case StartPicked:
		return "start_picked"
	case RangeComplete:
		return "range_complete"
	default:
		return fmt.Sprintf("picker_state(%d)", int(s))
	}
}

// Picker models the date-range selection a user performs on a calendar.
//
// Clicks on days strictly before "today" are ignored. In the validated
// variant (a non-nil isReserved), clicks on reserved days are ignored too,
// and completing a range that would straddle a reserved day restarts the
// selection at the clicked day instead.
//
// The picker never resets itself after Confirm — the hosting flow decides
// whether to keep or discard the selection.
type Picker struct {
	state      PickerState
	start, end time.Time

	// isReserved marks days that cannot be part of a range. Nil disables
	// the check (the fleet-wide picker, where per-vehicle conflicts are
	// resolved later by availability filtering).
	isReserved func(time.Time) bool

	// now is injected for tests; nil means time.Now.
	now func() time.Time
}

// NewPicker returns a plain picker with no reserved-day checking.
func NewPicker() *Picker {
	return &Picker{}
}

// NewValidatedPicker returns a picker that refuses to select or straddle
// days for which isReserved returns true.
func NewValidatedPicker(isReserved func(time.Time) bool) *Picker {
	return &Picker{isReserved: isReserved}
}

// SetNow overrides the clock used for the "no past dates" rule. Tests use
// this to pin "today".
func (p *Picker) SetNow(now func() time.Time) { p.now = now }

// State returns the current picker state.
func (p *Picker) State() PickerState { return p.state }

// Range returns the selection so far. End is zero until the range completes.
func (p *Picker) Range() (start, end time.Time) { return p.start, p.end }

// today returns the current calendar day, normalized.
func (p *Picker) today() time.Time {
	nowFn := p.now
	if nowFn == nil {
		nowFn = time.Now
	}
	return domain.NormalizeDate(nowFn())
}

// reserved reports whether d is blocked in the validated variant.
func (p *Picker) reserved(d time.Time) bool {
	return p.isReserved != nil && p.isReserved(d)
}

// Click feeds one calendar-day click into the state machine.
// Clicks on past or reserved days are ignored in every state.
func (p *Picker) Click(day time.Time) {
	d := domain.NormalizeDate(day)
	if d.Before(p.today()) || p.reserved(d) {
		return
	}

	switch p.state {
	case Empty:
		p.start, p.end = d, time.Time{}
		p.state = StartPicked

	case StartPicked:
		if d.Before(p.start) {
			// An earlier click restarts the selection with the earlier
			// date as the new start.
			p.start = d
			return
		}
		// Completing the range must not straddle a reserved day.
		for cursor := p.start; !cursor.After(d); cursor = cursor.AddDate(0, 0, 1) {
			if p.reserved(cursor) {
				p.start, p.end = d, time.Time{}
				return
			}
		}
		p.end = d
		p.state = RangeComplete

	case RangeComplete:
		// Any click after a complete range begins a new selection.
		p.start, p.end = d, time.Time{}
		p.state = StartPicked
	}
}

// Confirm emits the selected range. It is only valid in RangeComplete;
// in any other state it returns ErrValidation.
func (p *Picker) Confirm() (domain.DateRange, error) {
	if p.state != RangeComplete {
		return domain.DateRange{}, fmt.Errorf("%w: date range is not complete", domain.ErrValidation)
	}
	return domain.DateRange{Start: p.start, End: p.end}, nil
}

// Reset clears the selection back to Empty.
func (p *Picker) Reset() {
	p.start, p.end = time.Time{}, time.Time{}
	p.state = Empty
}
