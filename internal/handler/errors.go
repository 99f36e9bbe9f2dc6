package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// errorResponse is the JSON error envelope for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// rather than surfaced — the status line is already on the wire.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response failed", "error", err)
	}
}

// writeError maps domain sentinel errors onto HTTP statuses:
// validation → 422, not found → 404, conflict → 409, anything else → 500.
// Internal errors never leak their message to the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		s.writeJSON(w, http.StatusUnprocessableEntity,
			errorResponse{errorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound,
			errorResponse{errorDetail{Code: "not_found", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrConflict):
		s.writeJSON(w, http.StatusConflict,
			errorResponse{errorDetail{Code: "conflict", Message: unwrapMessage(err)}})
	default:
		s.log.Error("request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError,
			errorResponse{errorDetail{Code: "internal_error", Message: "internal server error"}})
	}
}

// badRequest reports a request rejected before reaching the service layer
// (malformed body, unparseable parameter).
func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusBadRequest,
		errorResponse{errorDetail{Code: "bad_request", Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.ReservationService.Delete: not found" → "not found".
// Layer prefixes end with ": " and never contain one themselves, so the last
// sentinel-bearing segment is the message.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{"validation error", "not found", "conflict"} {
		if idx := strings.Index(msg, sentinel); idx >= 0 {
			return msg[idx:]
		}
	}
	return msg
}
