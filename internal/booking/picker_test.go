package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotar/fleet-reserve/internal/booking"
	"github.com/flotar/fleet-reserve/internal/domain"
)

// fixedToday pins the picker's clock to 2024-03-01 so "past" is deterministic.
var fixedToday = func() time.Time { return time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC) }

func march(d int) time.Time {
	return domain.NewDate(2024, time.March, d)
}

func newPicker() *booking.Picker {
	p := booking.NewPicker()
	p.SetNow(fixedToday)
	return p
}

func TestPicker_FirstClickPicksStart(t *testing.T) {
	p := newPicker()

	p.Click(march(10))

	assert.Equal(t, booking.StartPicked, p.State())
	start, end := p.Range()
	assert.True(t, start.Equal(march(10)))
	assert.True(t, end.IsZero())
}

func TestPicker_SecondLaterClickCompletesRange(t *testing.T) {
	p := newPicker()

	p.Click(march(10))
	p.Click(march(15))

	assert.Equal(t, booking.RangeComplete, p.State())
	got, err := p.Confirm()
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(march(10)))
	assert.True(t, got.End.Equal(march(15)))
}

func TestPicker_SameDayClickCompletesSingleDayRange(t *testing.T) {
	p := newPicker()

	p.Click(march(10))
	p.Click(march(10))

	assert.Equal(t, booking.RangeComplete, p.State())
	got, err := p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 1, got.Days())
}

func TestPicker_EarlierClickRestartsWithEarlierStart(t *testing.T) {
	p := newPicker()

	p.Click(march(10))
	p.Click(march(5))

	// Clicking before the pending start restarts the selection at the
	// earlier day; it does not complete a range.
	assert.Equal(t, booking.StartPicked, p.State())
	start, end := p.Range()
	assert.True(t, start.Equal(march(5)))
	assert.True(t, end.IsZero())
}

func TestPicker_ClickAfterCompleteStartsNewSelection(t *testing.T) {
	p := newPicker()

	p.Click(march(10))
	p.Click(march(15))
	p.Click(march(20))

	assert.Equal(t, booking.StartPicked, p.State())
	start, end := p.Range()
	assert.True(t, start.Equal(march(20)))
	assert.True(t, end.IsZero())
}

func TestPicker_PastDatesIgnored(t *testing.T) {
	p := newPicker()

	p.Click(domain.NewDate(2024, time.February, 28))

	assert.Equal(t, booking.Empty, p.State())
}

func TestPicker_TodayIsSelectable(t *testing.T) {
	p := newPicker()

	p.Click(march(1))

	assert.Equal(t, booking.StartPicked, p.State())
}

func TestPicker_ConfirmBeforeCompleteFails(t *testing.T) {
	p := newPicker()

	_, err := p.Confirm()
	assert.ErrorIs(t, err, domain.ErrValidation)

	p.Click(march(10))
	_, err = p.Confirm()
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPicker_ConfirmDoesNotReset(t *testing.T) {
	p := newPicker()
	p.Click(march(10))
	p.Click(march(12))

	_, err := p.Confirm()
	require.NoError(t, err)

	assert.Equal(t, booking.RangeComplete, p.State())
}

func TestPicker_Reset(t *testing.T) {
	p := newPicker()
	p.Click(march(10))
	p.Click(march(12))

	p.Reset()

	assert.Equal(t, booking.Empty, p.State())
	start, end := p.Range()
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())
}

// --- validated variant ------------------------------------------------------

func reservedOn(days ...int) func(time.Time) bool {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[march(d).Format("2006-01-02")] = true
	}
	return func(t time.Time) bool {
		return set[domain.NormalizeDate(t).Format("2006-01-02")]
	}
}

func newValidatedPicker(reservedDays ...int) *booking.Picker {
	p := booking.NewValidatedPicker(reservedOn(reservedDays...))
	p.SetNow(fixedToday)
	return p
}

func TestValidatedPicker_ReservedDayNotSelectable(t *testing.T) {
	p := newValidatedPicker(10)

	p.Click(march(10))

	assert.Equal(t, booking.Empty, p.State())
}

func TestValidatedPicker_StraddlingReservedDayRestartsAtClick(t *testing.T) {
	p := newValidatedPicker(12)

	p.Click(march(10))
	p.Click(march(15))

	// Day 12 sits between the pending start and the clicked end, so the
	// completion is refused and the clicked day becomes the new start.
	assert.Equal(t, booking.StartPicked, p.State())
	start, end := p.Range()
	assert.True(t, start.Equal(march(15)))
	assert.True(t, end.IsZero())
}

func TestValidatedPicker_CleanRangeCompletes(t *testing.T) {
	p := newValidatedPicker(20)

	p.Click(march(10))
	p.Click(march(15))

	assert.Equal(t, booking.RangeComplete, p.State())
}
