package service

import (
	"time"

	"github.com/flotar/fleet-reserve/internal/domain"
	"github.com/flotar/fleet-reserve/internal/stats"
)

// Snapshotter provides the reservation list the stats are computed from.
// Satisfied by *ReservationService.
type Snapshotter interface {
	Snapshot() []domain.Reservation
}

// StatsService computes dashboard metrics from the cached reservation view.
type StatsService struct {
	source Snapshotter

	// now is injected for tests; nil means time.Now.
	now func() time.Time
}

// NewStatsService constructs a StatsService over the given snapshot source.
func NewStatsService(source Snapshotter) *StatsService {
	return &StatsService{source: source}
}

// SetNow overrides the clock used to resolve relative windows.
func (s *StatsService) SetNow(now func() time.Time) { s.now = now }

// Summary resolves the wire window value and aggregates the current snapshot.
// A nil result means there is nothing in the window; the handler renders an
// empty state. An unknown window value is a validation error.
func (s *StatsService) Summary(window string) (*stats.Stats, error) {
	w, err := stats.ParseWindow(window)
	if err != nil {
		return nil, err
	}

	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	return stats.Summarize(s.source.Snapshot(), w, nowFn()), nil
}
