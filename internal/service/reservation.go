// Package service contains the business logic for the fleet reservation API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flotar/fleet-reserve/internal/availability"
	"github.com/flotar/fleet-reserve/internal/booking"
	"github.com/flotar/fleet-reserve/internal/catalog"
	"github.com/flotar/fleet-reserve/internal/domain"
	"github.com/flotar/fleet-reserve/internal/repo"
)

// Notifier delivers the confirmation email after a reservation is created.
// Defined here, in the consumer package, so the service can be tested with a
// function-field mock instead of a real mail client.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, res domain.Reservation) error
}

// notifyTimeout bounds the background confirmation send so a stuck mail
// provider cannot leak goroutines forever.
const notifyTimeout = 30 * time.Second

// ReservationService owns the reservation lifecycle: availability-checked
// creation, cancellation, and the cached calendar every read goes through.
//
// The cache is the service's last-synced view of the store. It is refreshed
// at startup, after every local write, and whenever the store's change signal
// fires, so all connected instances converge on the same calendar without
// polling.
type ReservationService struct {
	catalog  *catalog.Catalog
	repo     repo.ReservationRepo
	notifier Notifier
	log      *slog.Logger

	mu     sync.RWMutex
	cached []domain.Reservation
}

// compile-time check: the service is a valid flow submission target.
var _ booking.ReservationCreator = (*ReservationService)(nil)

// NewReservationService constructs a ReservationService. Call Refresh once
// before serving so the cache starts from store truth.
func NewReservationService(cat *catalog.Catalog, r repo.ReservationRepo, n Notifier, log *slog.Logger) *ReservationService {
	return &ReservationService{catalog: cat, repo: r, notifier: n, log: log}
}

// Refresh re-fetches the full reservation list from the store and replaces
// the cached view.
func (s *ReservationService) Refresh(ctx context.Context) error {
	list, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("service.ReservationService.Refresh: %w", err)
	}

	s.mu.Lock()
	s.cached = list
	s.mu.Unlock()
	return nil
}

// Watch refreshes the cache every time the change signal fires, until ctx is
// cancelled. Refresh failures are logged and retried on the next signal; the
// stale cache stays serveable in the meantime.
func (s *ReservationService) Watch(ctx context.Context, signals <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			if err := s.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.log.Error("reservation cache refresh failed", "error", err)
			}
		}
	}
}

// Snapshot returns a copy of the cached reservation list, ordered by start
// date. Never nil.
func (s *ReservationService) Snapshot() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reservation, len(s.cached))
	copy(out, s.cached)
	return out
}

// List returns a page of the cached reservation list plus the total count.
func (s *ReservationService) List(p domain.PaginationParams) ([]domain.Reservation, int) {
	all := s.Snapshot()
	total := len(all)

	start := p.Offset()
	if start >= total {
		return []domain.Reservation{}, total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return all[start:end], total
}

// AvailableVehicles returns the corrected fleet filtered by free-text query,
// vehicle type, and availability for the candidate range. A zero range skips
// the availability filter.
func (s *ReservationService) AvailableVehicles(candidate domain.DateRange, query, vehicleType string) []domain.Vehicle {
	matched := s.catalog.Search(query, vehicleType)
	return availability.FilterAvailable(matched, candidate, s.Snapshot())
}

// Create validates and persists a new reservation, then refreshes the cache
// and fires the confirmation email in the background.
//
// The availability check runs against the cached view: it rejects every
// conflict this instance knows about, but two instances racing for the same
// vehicle and window can still both reach the store.
func (s *ReservationService) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	vehicle, ok := s.catalog.ByID(res.VehicleID)
	if !ok {
		return domain.Reservation{}, fmt.Errorf("%w: unknown vehicle %d", domain.ErrValidation, res.VehicleID)
	}
	if !res.Trip.IsValid() {
		return domain.Reservation{}, fmt.Errorf("%w: start date must not be after end date", domain.ErrValidation)
	}
	if err := booking.ValidateDetails(res.Details, vehicle); err != nil {
		return domain.Reservation{}, err
	}
	if res.HotelDetails != nil {
		if err := booking.ValidateHotel(*res.HotelDetails, res.Trip); err != nil {
			return domain.Reservation{}, err
		}
	}
	if !availability.IsAvailable(vehicle, res.Trip, s.Snapshot()) {
		return domain.Reservation{}, fmt.Errorf("%w: vehicle %q is already reserved in that window", domain.ErrConflict, vehicle.Name)
	}

	// The stored name is a snapshot of the corrected catalog name at booking
	// time; it is never re-derived on read.
	res.VehicleName = vehicle.Name

	created, err := s.repo.Create(ctx, res)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("service.ReservationService.Create: %w", err)
	}

	if err := s.Refresh(ctx); err != nil {
		// The write itself succeeded; the change signal will heal the cache.
		s.log.Warn("cache refresh after create failed", "error", err)
	}

	s.notifyCreated(created)
	return created, nil
}

// notifyCreated sends the confirmation email without blocking the caller.
// Delivery failures never fail the reservation; they are logged and dropped.
func (s *ReservationService) notifyCreated(res domain.Reservation) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.ReservationConfirmed(ctx, res); err != nil {
			s.log.Error("confirmation email failed",
				"reservation_id", res.ID,
				"email", res.Details.Email,
				"error", err)
		}
	}()
}

// Delete cancels a reservation by id and refreshes the cache.
func (s *ReservationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ReservationService.Delete: %w", err)
	}
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("cache refresh after delete failed", "error", err)
	}
	return nil
}
