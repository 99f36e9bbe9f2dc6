package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flotar/fleet-reserve/internal/booking"
	"github.com/flotar/fleet-reserve/internal/domain"
)

// flowResponse is the wire view of one authoring session. Only the parts the
// flow has confirmed so far are present.
type flowResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Stage       string                     `json:"stage"`
	Trip        *domain.DateRange          `json:"trip,omitempty"`
	Vehicle     *domain.Vehicle            `json:"vehicle,omitempty"`
	Details     *domain.ReservationDetails `json:"details,omitempty"`
	Reservation *domain.Reservation        `json:"reservation,omitempty"`
}

func flowToResponse(f *booking.Flow) flowResponse {
	resp := flowResponse{ID: f.ID(), Stage: f.Stage().String()}
	if trip := f.Trip(); trip.IsValid() {
		resp.Trip = &trip
	}
	if v, ok := f.Vehicle(); ok {
		resp.Vehicle = &v
	}
	if d, ok := f.Details(); ok {
		resp.Details = &d
	}
	if created, ok := f.Created(); ok {
		resp.Reservation = &created
	}
	return resp
}

// StartFlow handles POST /api/flows: opens a new authoring session at the
// date-selection stage.
func (s *Server) StartFlow(w http.ResponseWriter, _ *http.Request) {
	f := s.flows.Start()
	s.writeJSON(w, http.StatusCreated, flowToResponse(f))
}

// GetFlow handles GET /api/flows/{id}.
func (s *Server) GetFlow(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flowFromPath(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, flowToResponse(f))
}

// AbandonFlow handles DELETE /api/flows/{id}: drops the session entirely.
func (s *Server) AbandonFlow(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.badRequest(w, "invalid flow id")
		return
	}
	s.flows.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

// FlowSubmitDates handles POST /api/flows/{id}/dates.
func (s *Server) FlowSubmitDates(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flowFromPath(w, r)
	if !ok {
		return
	}

	var body struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.badRequest(w, "invalid JSON body")
		return
	}
	start, err := parseDateParam(body.StartDate)
	if err != nil {
		s.badRequest(w, "startDate: "+err.Error())
		return
	}
	end, err := parseDateParam(body.EndDate)
	if err != nil {
		s.badRequest(w, "endDate: "+err.Error())
		return
	}

	if err := f.SubmitDates(start, end); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, flowToResponse(f))
}

// FlowSelectVehicle handles POST /api/flows/{id}/vehicle.
// The vehicle must be free for the flow's trip window at this instant; the
// final submission re-checks.
func (s *Server) FlowSelectVehicle(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flowFromPath(w, r)
	if !ok {
		return
	}

	var body struct {
		VehicleID int `json:"vehicleId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.badRequest(w, "invalid JSON body")
		return
	}

	var selected *domain.Vehicle
	for _, v := range s.reservations.AvailableVehicles(f.Trip(), "", "") {
		if v.ID == body.VehicleID {
			selected = &v
			break
		}
	}
	if selected == nil {
		s.writeError(w, domain.ErrNotFound)
		return
	}

	if err := f.SelectVehicle(*selected); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, flowToResponse(f))
}

// FlowSubmitDetails handles POST /api/flows/{id}/details.
func (s *Server) FlowSubmitDetails(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flowFromPath(w, r)
	if !ok {
		return
	}

	var details domain.ReservationDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		s.badRequest(w, "invalid JSON body")
		return
	}

	if err := f.SubmitDetails(details); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, flowToResponse(f))
}

// FlowSubmitHotel handles POST /api/flows/{id}/hotel: the final stage, which
// submits the composed reservation to the store.
func (s *Server) FlowSubmitHotel(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flowFromPath(w, r)
	if !ok {
		return
	}

	var payload hotelPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.badRequest(w, "invalid JSON body")
		return
	}
	hotel, err := payload.toDomain()
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	if _, err := f.SubmitHotel(r.Context(), hotel); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, flowToResponse(f))
}

// FlowBack handles POST /api/flows/{id}/back.
func (s *Server) FlowBack(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flowFromPath(w, r)
	if !ok {
		return
	}
	if err := f.Back(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, flowToResponse(f))
}

// FlowReset handles POST /api/flows/{id}/reset: back to date selection with
// everything cleared, the "new reservation" action.
func (s *Server) FlowReset(w http.ResponseWriter, r *http.Request) {
	f, ok := s.flowFromPath(w, r)
	if !ok {
		return
	}
	if err := f.Reset(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, flowToResponse(f))
}

// flowFromPath resolves the {id} path parameter to a live flow, writing the
// error response itself when it cannot.
func (s *Server) flowFromPath(w http.ResponseWriter, r *http.Request) (*booking.Flow, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.badRequest(w, "invalid flow id")
		return nil, false
	}
	f, ok := s.flows.Get(id)
	if !ok {
		s.writeError(w, domain.ErrNotFound)
		return nil, false
	}
	return f, true
}
