package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/flotar/fleet-reserve/internal/booking"
	"github.com/flotar/fleet-reserve/internal/catalog"
	"github.com/flotar/fleet-reserve/internal/domain"
	"github.com/flotar/fleet-reserve/internal/handler"
	"github.com/flotar/fleet-reserve/internal/stats"
)

// mockReservationServicer is a test double for handler.ReservationServicer.
// Set only the method fields your test needs.
type mockReservationServicer struct {
	list              func(p domain.PaginationParams) ([]domain.Reservation, int)
	create            func(ctx context.Context, res domain.Reservation) (domain.Reservation, error)
	delete            func(ctx context.Context, id uuid.UUID) error
	availableVehicles func(candidate domain.DateRange, query, vehicleType string) []domain.Vehicle
}

func (m *mockReservationServicer) List(p domain.PaginationParams) ([]domain.Reservation, int) {
	return m.list(p)
}
func (m *mockReservationServicer) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	return m.create(ctx, res)
}
func (m *mockReservationServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockReservationServicer) AvailableVehicles(candidate domain.DateRange, query, vehicleType string) []domain.Vehicle {
	return m.availableVehicles(candidate, query, vehicleType)
}

// compile-time check: mockReservationServicer must satisfy both consumer
// interfaces it stands in for.
var (
	_ handler.ReservationServicer = (*mockReservationServicer)(nil)
	_ booking.ReservationCreator  = (*mockReservationServicer)(nil)
)

// mockStatsProvider is a test double for handler.StatsProvider.
type mockStatsProvider struct {
	summary func(window string) (*stats.Stats, error)
}

func (m *mockStatsProvider) Summary(window string) (*stats.Stats, error) {
	return m.summary(window)
}

// mockSubscriber hands out a fixed signal channel.
type mockSubscriber struct {
	ch chan struct{}
}

func (m *mockSubscriber) Subscribe() (<-chan struct{}, func()) {
	return m.ch, func() {}
}

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router,
// mirroring how main.go wires it in production. The flow registry is real:
// flow handlers are exercised against actual flow semantics, with only the
// store mocked.
func newHTTPHandler(svc *mockReservationServicer, statsProvider handler.StatsProvider, sub handler.ChangeSubscriber) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(svc, statsProvider, booking.NewFlows(svc), sub, catalog.Destinations(), log)
	return srv.Routes()
}

func testVehicle() domain.Vehicle {
	return domain.Vehicle{
		ID: 1, Name: "Amarok AH437DS", Plate: "AH437DS",
		Type: domain.VehiclePickup, Capacity: 4, FuelType: "diesel",
	}
}

func reservationFixture() domain.Reservation {
	return domain.Reservation{
		ID:          uuid.New(),
		VehicleID:   1,
		VehicleName: "Amarok AH437DS",
		Details: domain.ReservationDetails{
			Name:        "Laura Pérez",
			Email:       "laura.perez@example.com",
			Destination: "Rosario, Santa Fe",
			Attendees:   []string{"Laura Pérez"},
		},
		Trip: domain.DateRange{
			Start: domain.NewDate(2024, time.June, 10),
			End:   domain.NewDate(2024, time.June, 12),
		},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func doRequest(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
