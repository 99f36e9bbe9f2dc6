package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// createReservationRequest is the body of POST /api/reservations.
// Dates travel as "2006-01-02" strings.
type createReservationRequest struct {
	VehicleID    int                       `json:"vehicleId"`
	StartDate    string                    `json:"startDate"`
	EndDate      string                    `json:"endDate"`
	Details      domain.ReservationDetails `json:"details"`
	HotelDetails *hotelPayload             `json:"hotelDetails"`
}

// hotelPayload is the wire shape of a lodging request, shared by the direct
// create endpoint and the flow's hotel stage.
type hotelPayload struct {
	Required          bool                    `json:"required"`
	Passengers        []domain.HotelPassenger `json:"passengers"`
	Rooms             []domain.HotelRoom      `json:"rooms"`
	CheckIn           string                  `json:"checkIn"`
	CheckOut          string                  `json:"checkOut"`
	Suggestions       string                  `json:"suggestions"`
	AccountingAccount string                  `json:"accountingAccount"`
}

// toDomain converts the payload, parsing the date strings. Dates are only
// required when lodging is requested.
func (p *hotelPayload) toDomain() (domain.HotelDetails, error) {
	out := domain.HotelDetails{
		Required:          p.Required,
		Passengers:        p.Passengers,
		Rooms:             p.Rooms,
		Suggestions:       p.Suggestions,
		AccountingAccount: p.AccountingAccount,
	}
	if !p.Required {
		return out, nil
	}
	checkIn, err := parseDateParam(p.CheckIn)
	if err != nil {
		return domain.HotelDetails{}, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := parseDateParam(p.CheckOut)
	if err != nil {
		return domain.HotelDetails{}, fmt.Errorf("checkOut: %w", err)
	}
	out.CheckIn = checkIn
	out.CheckOut = checkOut
	return out, nil
}

// ListReservations handles GET /api/reservations.
// Supports ?page= and ?limit= (defaults: page=1, limit=50, max=100).
func (s *Server) ListReservations(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(
		queryInt(r, "page"),
		queryInt(r, "limit"),
	)

	data, total := s.reservations.List(params)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"data": data,
		"pagination": map[string]int{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// CreateReservation handles POST /api/reservations: the direct creation API
// used by integrations that do not drive the staged flow.
func (s *Server) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid JSON body")
		return
	}

	start, err := parseDateParam(req.StartDate)
	if err != nil {
		s.badRequest(w, "startDate: "+err.Error())
		return
	}
	end, err := parseDateParam(req.EndDate)
	if err != nil {
		s.badRequest(w, "endDate: "+err.Error())
		return
	}

	res := domain.Reservation{
		VehicleID: req.VehicleID,
		Details:   req.Details,
		Trip:      domain.NewDateRange(start, end),
	}
	if req.HotelDetails != nil {
		hotel, err := req.HotelDetails.toDomain()
		if err != nil {
			s.badRequest(w, "hotelDetails: "+err.Error())
			return
		}
		res.HotelDetails = &hotel
	}

	created, err := s.reservations.Create(r.Context(), res)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

// DeleteReservation handles DELETE /api/reservations/{id}.
func (s *Server) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.badRequest(w, "invalid reservation id")
		return
	}

	if err := s.reservations.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryInt parses an optional integer query parameter; nil when absent or
// unparseable.
func queryInt(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
