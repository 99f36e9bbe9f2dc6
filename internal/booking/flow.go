package booking

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// Stage is one step of the reservation authoring pipeline.
// The pipeline is strictly ordered; each stage is gated on the previous
// stage's output.
type Stage int

const (
	// StageDates collects the trip window.
	StageDates Stage = iota + 1
	// StageVehicle picks a vehicle from the availability-filtered list.
	StageVehicle
	// StageDetails collects contact and attendee data.
	StageDetails
	// StageHotel collects the optional lodging block and submits.
	StageHotel
	// StageConfirmed is terminal and carries the created reservation.
	StageConfirmed
)

// String returns the wire name of the stage.
func (s Stage) String() string {
	switch s {
	case StageDates:
		return "dates"
	case StageVehicle:
		return "vehicle"
	case StageDetails:
		return "details"
	case StageHotel:
		return "hotel"
	case StageConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// ReservationCreator persists a composed reservation.
// Defined here, in the consumer package, so the flow can be tested with a
// function-field mock instead of a real service.
type ReservationCreator interface {
	Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error)
}

// Flow is one user's pass through the four-stage reservation pipeline.
// All methods are safe for concurrent use; a submission lock guarantees at
// most one create attempt is in flight at a time.
//
// A validation or store failure never advances the stage and never discards
// collected input, so the user can correct and retry without re-entering
// earlier stages.
type Flow struct {
	mu sync.Mutex

	id      uuid.UUID
	stage   Stage
	trip    domain.DateRange
	vehicle domain.Vehicle
	hasVeh  bool
	details domain.ReservationDetails
	hasDet  bool
	created *domain.Reservation

	submitting bool
	creator    ReservationCreator

	// touched is the wall-clock time of the last operation; the registry
	// sweeps flows that have sat untouched too long.
	touched time.Time

	// now is injected for tests; nil means time.Now.
	now func() time.Time
}

// NewFlow starts a fresh flow at the date-selection stage.
func NewFlow(creator ReservationCreator) *Flow {
	return &Flow{id: uuid.New(), stage: StageDates, creator: creator, touched: time.Now()}
}

// SetNow overrides the clock used for the "no past start date" rule.
func (f *Flow) SetNow(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// ID returns the session identifier of this flow.
func (f *Flow) ID() uuid.UUID { return f.id }

// Stage returns the current stage.
func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Trip returns the confirmed trip window; zero before stage 1 completes.
func (f *Flow) Trip() domain.DateRange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trip
}

// Vehicle returns the selected vehicle, if one has been chosen.
func (f *Flow) Vehicle() (domain.Vehicle, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vehicle, f.hasVeh
}

// Details returns the confirmed trip details, if stage 3 has completed.
func (f *Flow) Details() (domain.ReservationDetails, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details, f.hasDet
}

// Created returns the reservation produced by a successful submission.
func (f *Flow) Created() (domain.Reservation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created == nil {
		return domain.Reservation{}, false
	}
	return *f.created, true
}

// Touch records activity on the flow, deferring its expiry.
func (f *Flow) Touch() {
	f.mu.Lock()
	f.touched = time.Now()
	f.mu.Unlock()
}

// idleSince reports whether the flow has seen no activity since before
// cutoff. A flow with a create call in flight is never idle.
func (f *Flow) idleSince(cutoff time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.submitting && f.touched.Before(cutoff)
}

func (f *Flow) today() time.Time {
	nowFn := f.now
	if nowFn == nil {
		nowFn = time.Now
	}
	return domain.NormalizeDate(nowFn())
}

// SubmitDates confirms the trip window and advances to vehicle selection.
func (f *Flow) SubmitDates(start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()

	if f.stage != StageDates {
		return stageError(f.stage, StageDates)
	}
	trip := domain.NewDateRange(start, end)
	if !trip.IsValid() {
		return fmt.Errorf("%w: start date must not be after end date", domain.ErrValidation)
	}
	if trip.Start.Before(f.today()) {
		return fmt.Errorf("%w: start date is in the past", domain.ErrValidation)
	}

	f.trip = trip
	f.stage = StageVehicle
	return nil
}

// SelectVehicle confirms the vehicle choice and advances to trip details.
// Availability against the caller's last-synced view is the caller's job
// (the handler only offers filtered vehicles); the final create re-checks.
func (f *Flow) SelectVehicle(v domain.Vehicle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()

	if f.stage != StageVehicle {
		return stageError(f.stage, StageVehicle)
	}
	if v.Capacity < 1 {
		return fmt.Errorf("%w: vehicle has no passenger capacity", domain.ErrValidation)
	}

	f.vehicle = v
	f.hasVeh = true
	f.stage = StageDetails
	return nil
}

// SubmitDetails validates and confirms the trip details, advancing to the
// hotel stage. On validation failure the flow stays at the details stage.
func (f *Flow) SubmitDetails(d domain.ReservationDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()

	if f.stage != StageDetails {
		return stageError(f.stage, StageDetails)
	}
	if err := ValidateDetails(d, f.vehicle); err != nil {
		return err
	}

	f.details = d
	f.hasDet = true
	f.stage = StageHotel
	return nil
}

// SubmitHotel validates the lodging block, composes the final reservation,
// and delegates creation to the store. On success the flow moves to the
// terminal confirmed stage carrying the created reservation. On failure the
// flow stays at the hotel stage with all collected input preserved, and the
// submission lock is released so the user can retry.
func (f *Flow) SubmitHotel(ctx context.Context, h domain.HotelDetails) (domain.Reservation, error) {
	f.mu.Lock()
	f.touched = time.Now()
	if f.stage != StageHotel {
		f.mu.Unlock()
		return domain.Reservation{}, stageError(f.stage, StageHotel)
	}
	if f.submitting {
		f.mu.Unlock()
		return domain.Reservation{}, fmt.Errorf("%w: a submission is already in flight", domain.ErrConflict)
	}
	if err := ValidateHotel(h, f.trip); err != nil {
		f.mu.Unlock()
		return domain.Reservation{}, err
	}

	res := domain.Reservation{
		VehicleID:    f.vehicle.ID,
		VehicleName:  f.vehicle.Name,
		Details:      f.details,
		Trip:         f.trip,
		HotelDetails: normalizeHotel(h, f.trip),
	}
	f.submitting = true
	creator := f.creator
	f.mu.Unlock()

	// The create call does I/O; it runs outside the flow lock so status
	// reads do not block on the store.
	created, err := creator.Create(ctx, res)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()
	f.submitting = false
	if err != nil {
		return domain.Reservation{}, err
	}
	f.created = &created
	f.stage = StageConfirmed
	return created, nil
}

// Back steps to the previous stage, discarding only the current stage's own
// in-progress edits: leaving vehicle selection drops the vehicle choice,
// leaving the details stage drops the details, and backing out of date
// selection clears the date range. Earlier confirmed stages are kept.
// While a submission is in flight the flow is frozen: stepping back would
// let the user re-walk the stages and submit a second time.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()

	if f.submitting {
		return fmt.Errorf("%w: a submission is in flight", domain.ErrConflict)
	}

	switch f.stage {
	case StageDates:
		f.trip = domain.DateRange{}
	case StageVehicle:
		f.vehicle = domain.Vehicle{}
		f.hasVeh = false
		f.stage = StageDates
	case StageDetails:
		f.details = domain.ReservationDetails{}
		f.hasDet = false
		f.stage = StageVehicle
	case StageHotel:
		f.stage = StageDetails
	default:
		return fmt.Errorf("%w: cannot go back from a confirmed reservation", domain.ErrValidation)
	}
	return nil
}

// Reset wipes the whole pipeline back to date selection. This is the
// "new reservation" action from the confirmation stage, but it is accepted
// in any stage. It is rejected while a submission is in flight: clearing the
// lock mid-create would allow a duplicate submission, and the stale create's
// completion would clobber the reset flow.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched = time.Now()

	if f.submitting {
		return fmt.Errorf("%w: a submission is in flight", domain.ErrConflict)
	}

	f.trip = domain.DateRange{}
	f.vehicle = domain.Vehicle{}
	f.hasVeh = false
	f.details = domain.ReservationDetails{}
	f.hasDet = false
	f.created = nil
	f.stage = StageDates
	return nil
}

// stageError builds the message for an operation issued at the wrong stage.
func stageError(current, want Stage) error {
	return fmt.Errorf("%w: flow is at the %s stage, not %s", domain.ErrValidation, current, want)
}

// ValidateDetails checks the trip-level contact data against the selected
// vehicle. Every failure wraps domain.ErrValidation with a human-readable
// message.
func ValidateDetails(d domain.ReservationDetails, vehicle domain.Vehicle) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(d.Email) == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if strings.TrimSpace(d.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if len(d.Attendees) == 0 {
		return fmt.Errorf("%w: at least one attendee is required", domain.ErrValidation)
	}
	if strings.TrimSpace(d.Attendees[0]) != strings.TrimSpace(d.Name) {
		return fmt.Errorf("%w: the first attendee must be the primary contact", domain.ErrValidation)
	}
	if len(d.Attendees) > vehicle.Capacity {
		return fmt.Errorf("%w: attendee count exceeds vehicle capacity (%d)", domain.ErrValidation, vehicle.Capacity)
	}
	return nil
}

// ValidateHotel checks the lodging block against the enclosing trip window.
// A not-required block is always valid; its fields are ignored.
func ValidateHotel(h domain.HotelDetails, trip domain.DateRange) error {
	if !h.Required {
		return nil
	}
	if len(h.Passengers) == 0 {
		return fmt.Errorf("%w: at least one hotel passenger is required", domain.ErrValidation)
	}
	for _, p := range h.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: every hotel passenger needs a name", domain.ErrValidation)
		}
	}
	if len(h.Rooms) == 0 {
		return fmt.Errorf("%w: at least one room is required", domain.ErrValidation)
	}
	for _, r := range h.Rooms {
		if r.Quantity < 1 {
			return fmt.Errorf("%w: room quantity must be at least 1", domain.ErrValidation)
		}
		if r.Type != domain.RoomSingle && r.Type != domain.RoomDouble {
			return fmt.Errorf("%w: unknown room type %q", domain.ErrValidation, r.Type)
		}
	}
	stay := h.Stay()
	if !stay.IsValid() {
		return fmt.Errorf("%w: check-in must not be after check-out", domain.ErrValidation)
	}
	if !trip.Encloses(stay) {
		return fmt.Errorf("%w: hotel dates must fall within the trip window", domain.ErrValidation)
	}
	return nil
}

// normalizeHotel returns the canonical stored shape of the lodging block.
// When lodging is not required all other fields are dropped and the
// check-in/check-out pair defaults to the trip's dates, keeping the stored
// schema uniform. When it is required, dates are normalized.
func normalizeHotel(h domain.HotelDetails, trip domain.DateRange) *domain.HotelDetails {
	if !h.Required {
		return &domain.HotelDetails{
			Required: false,
			CheckIn:  trip.Start,
			CheckOut: trip.End,
		}
	}
	out := h
	out.CheckIn = domain.NormalizeDate(h.CheckIn)
	out.CheckOut = domain.NormalizeDate(h.CheckOut)
	return &out
}
