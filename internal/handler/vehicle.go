package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/flotar/fleet-reserve/internal/domain"
)

const dateParamLayout = "2006-01-02"

// ListVehicles handles GET /api/vehicles.
// Query parameters: ?start= and ?end= (both "2006-01-02", both or neither)
// filter the fleet to vehicles free for that window; ?q= matches name or
// plate; ?type= is "pickup", "sedan", or "all".
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	candidate, err := parseRangeParams(q.Get("start"), q.Get("end"))
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	vehicles := s.reservations.AvailableVehicles(candidate, q.Get("q"), q.Get("type"))
	s.writeJSON(w, http.StatusOK, map[string]any{"data": vehicles})
}

// ListDestinations handles GET /api/destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"data": s.destinations})
}

// parseRangeParams builds a DateRange from the start/end query values.
// Both empty yields a zero range (no availability filter); supplying only one
// of the pair is an error.
func parseRangeParams(start, end string) (domain.DateRange, error) {
	if start == "" && end == "" {
		return domain.DateRange{}, nil
	}
	if start == "" || end == "" {
		return domain.DateRange{}, fmt.Errorf("start and end must be supplied together")
	}
	s, err := parseDateParam(start)
	if err != nil {
		return domain.DateRange{}, err
	}
	e, err := parseDateParam(end)
	if err != nil {
		return domain.DateRange{}, err
	}
	rng := domain.NewDateRange(s, e)
	if !rng.IsValid() {
		return domain.DateRange{}, fmt.Errorf("start must not be after end")
	}
	return rng, nil
}

func parseDateParam(s string) (time.Time, error) {
	t, err := time.Parse(dateParamLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return domain.NormalizeDate(t), nil
}
