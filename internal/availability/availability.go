// Package availability answers one question: can a vehicle be booked for a
// candidate date range, given the reservations we already know about?
//
// Everything here is a pure function of its inputs. The functions only guard
// a single client's last-synced view of the calendar — they cannot prevent
// two clients from racing each other to the store.
package availability

import "github.com/flotar/fleet-reserve/internal/domain"

// IsAvailable reports whether the vehicle has no existing reservation
// overlapping the candidate range. Reservations for other vehicles are
// ignored. Overlap is the inclusive date-range rule of domain.DateRange.
func IsAvailable(vehicle domain.Vehicle, candidate domain.DateRange, reservations []domain.Reservation) bool {
	for _, r := range reservations {
		if r.VehicleID != vehicle.ID {
			continue
		}
		if candidate.Overlaps(r.Trip) {
			return false
		}
	}
	return true
}

// FilterAvailable returns the vehicles with no reservation overlapping the
// candidate range. A zero candidate range means no dates have been picked
// yet; in that state every vehicle is returned unfiltered.
func FilterAvailable(vehicles []domain.Vehicle, candidate domain.DateRange, reservations []domain.Reservation) []domain.Vehicle {
	if candidate.IsZero() {
		out := make([]domain.Vehicle, len(vehicles))
		copy(out, vehicles)
		return out
	}
	out := make([]domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if IsAvailable(v, candidate, reservations) {
			out = append(out, v)
		}
	}
	return out
}
