package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotar/fleet-reserve/internal/domain"
	"github.com/flotar/fleet-reserve/internal/stats"
)

func TestGetStats_200(t *testing.T) {
	var gotWindow string
	provider := &mockStatsProvider{
		summary: func(window string) (*stats.Stats, error) {
			gotWindow = window
			return &stats.Stats{
				Period: domain.DateRange{
					Start: domain.NewDate(2024, time.March, 1),
					End:   domain.NewDate(2024, time.March, 20),
				},
				Total:           4,
				AvgDurationDays: 2.5,
				HotelRate:       "25.0%",
			}, nil
		},
	}
	h := newHTTPHandler(&mockReservationServicer{}, provider, nil)

	rec := doRequest(h, http.MethodGet, "/api/stats?range=thisMonth", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "thisMonth", gotWindow)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(4), data["total"])
	assert.Equal(t, "25.0%", data["hotelRate"])
}

func TestGetStats_200_EmptyWindow(t *testing.T) {
	provider := &mockStatsProvider{
		summary: func(string) (*stats.Stats, error) { return nil, nil },
	}
	h := newHTTPHandler(&mockReservationServicer{}, provider, nil)

	rec := doRequest(h, http.MethodGet, "/api/stats", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeBody(t, rec)["data"], "empty window renders as null")
}

func TestGetStats_422_UnknownRange(t *testing.T) {
	provider := &mockStatsProvider{
		summary: func(window string) (*stats.Stats, error) {
			return nil, fmt.Errorf("%w: unknown stats window %q", domain.ErrValidation, window)
		},
	}
	h := newHTTPHandler(&mockReservationServicer{}, provider, nil)

	rec := doRequest(h, http.MethodGet, "/api/stats?range=fortnight", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
