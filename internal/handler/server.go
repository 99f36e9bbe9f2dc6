// Package handler implements the HTTP surface of the fleet reservation API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, reservation.go, flow.go, ...) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flotar/fleet-reserve/internal/booking"
	"github.com/flotar/fleet-reserve/internal/domain"
	"github.com/flotar/fleet-reserve/internal/stats"
)

// ReservationServicer defines the business operations the reservation and
// vehicle handlers depend on. Defining the interface here (in the consumer
// package) follows the Go convention: "accept interfaces, return concrete
// types". It lets handler tests inject a mock without touching the database
// or service layer.
type ReservationServicer interface {
	List(p domain.PaginationParams) ([]domain.Reservation, int)
	Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AvailableVehicles(candidate domain.DateRange, query, vehicleType string) []domain.Vehicle
}

// StatsProvider computes the dashboard summary for a wire window value.
type StatsProvider interface {
	Summary(window string) (*stats.Stats, error)
}

// ChangeSubscriber hands out change-signal channels for the event stream.
type ChangeSubscriber interface {
	Subscribe() (<-chan struct{}, func())
}

// Server holds the dependencies shared by every endpoint.
type Server struct {
	reservations ReservationServicer
	stats        StatsProvider
	flows        *booking.Flows
	changes      ChangeSubscriber
	destinations []string
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	reservations ReservationServicer,
	statsProvider StatsProvider,
	flows *booking.Flows,
	changes ChangeSubscriber,
	destinations []string,
	log *slog.Logger,
) *Server {
	return &Server{
		reservations: reservations,
		stats:        statsProvider,
		flows:        flows,
		changes:      changes,
		destinations: destinations,
		log:          log,
	}
}

// Routes mounts every endpoint on a fresh router. Cross-cutting middleware
// (CORS, request logging, body limits) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/vehicles", s.ListVehicles)
		r.Get("/destinations", s.ListDestinations)
		r.Get("/stats", s.GetStats)
		r.Get("/events", s.StreamEvents)

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", s.ListReservations)
			r.Post("/", s.CreateReservation)
			r.Delete("/{id}", s.DeleteReservation)
		})

		r.Route("/flows", func(r chi.Router) {
			r.Post("/", s.StartFlow)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetFlow)
				r.Delete("/", s.AbandonFlow)
				r.Post("/dates", s.FlowSubmitDates)
				r.Post("/vehicle", s.FlowSelectVehicle)
				r.Post("/details", s.FlowSubmitDetails)
				r.Post("/hotel", s.FlowSubmitHotel)
				r.Post("/back", s.FlowBack)
				r.Post("/reset", s.FlowReset)
			})
		})
	})

	return r
}
