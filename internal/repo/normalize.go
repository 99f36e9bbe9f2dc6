package repo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// Reservation rows written by the legacy front end carry their JSONB blobs
// in camelCase ("checkIn"), while rows written by this backend use
// snake_case. The functions in this file normalize both shapes into the
// domain model at the store boundary, so the core only ever sees the
// canonical form.

// rawHotelDetails accepts both key conventions for every field.
type rawHotelDetails struct {
	Required   bool `json:"required"`
	Passengers []struct {
		Name string `json:"name"`
	} `json:"passengers"`
	Rooms []struct {
		Quantity int    `json:"quantity"`
		Type     string `json:"type"`
	} `json:"rooms"`
	CheckIn           string `json:"checkIn"`
	CheckInSnake      string `json:"check_in"`
	CheckOut          string `json:"checkOut"`
	CheckOutSnake     string `json:"check_out"`
	Suggestions       string `json:"suggestions"`
	AccountingAccount string `json:"accountingAccount"`
	AccountingSnake   string `json:"accounting_account"`
}

// decodeHotelDetails parses a hotel_details JSONB blob into the domain
// shape. A null/empty blob or one without the required flag decodes to a
// not-required block; the caller fills in the default check-in/check-out.
func decodeHotelDetails(blob []byte, trip domain.DateRange) (*domain.HotelDetails, error) {
	out := &domain.HotelDetails{Required: false, CheckIn: trip.Start, CheckOut: trip.End}
	if len(blob) == 0 || string(blob) == "null" {
		return out, nil
	}

	var raw rawHotelDetails
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("decode hotel_details: %w", err)
	}
	if !raw.Required {
		return out, nil
	}

	out.Required = true
	out.Suggestions = raw.Suggestions
	out.AccountingAccount = firstNonEmpty(raw.AccountingAccount, raw.AccountingSnake)
	for _, p := range raw.Passengers {
		out.Passengers = append(out.Passengers, domain.HotelPassenger{Name: p.Name})
	}
	for _, r := range raw.Rooms {
		out.Rooms = append(out.Rooms, domain.HotelRoom{Quantity: r.Quantity, Type: domain.RoomType(r.Type)})
	}

	checkIn, err := parseStoredDate(firstNonEmpty(raw.CheckIn, raw.CheckInSnake))
	if err != nil {
		return nil, fmt.Errorf("decode hotel_details check-in: %w", err)
	}
	checkOut, err := parseStoredDate(firstNonEmpty(raw.CheckOut, raw.CheckOutSnake))
	if err != nil {
		return nil, fmt.Errorf("decode hotel_details check-out: %w", err)
	}
	if !checkIn.IsZero() {
		out.CheckIn = checkIn
	}
	if !checkOut.IsZero() {
		out.CheckOut = checkOut
	}
	return out, nil
}

// encodeHotelDetails serializes the canonical snake-free storage shape.
// Dates are stored as date-only strings; time-of-day never survives a
// round trip, which is exactly what the noon normalization wants.
func encodeHotelDetails(h *domain.HotelDetails) ([]byte, error) {
	if h == nil {
		return []byte(`{"required": false}`), nil
	}
	type room struct {
		Quantity int    `json:"quantity"`
		Type     string `json:"type"`
	}
	type passenger struct {
		Name string `json:"name"`
	}
	payload := struct {
		Required          bool        `json:"required"`
		Passengers        []passenger `json:"passengers,omitempty"`
		Rooms             []room      `json:"rooms,omitempty"`
		CheckIn           string      `json:"checkIn"`
		CheckOut          string      `json:"checkOut"`
		Suggestions       string      `json:"suggestions,omitempty"`
		AccountingAccount string      `json:"accountingAccount,omitempty"`
	}{
		Required:          h.Required,
		CheckIn:           h.CheckIn.Format("2006-01-02"),
		CheckOut:          h.CheckOut.Format("2006-01-02"),
		Suggestions:       h.Suggestions,
		AccountingAccount: h.AccountingAccount,
	}
	for _, p := range h.Passengers {
		payload.Passengers = append(payload.Passengers, passenger{Name: p.Name})
	}
	for _, r := range h.Rooms {
		payload.Rooms = append(payload.Rooms, room{Quantity: r.Quantity, Type: string(r.Type)})
	}
	return json.Marshal(payload)
}

// parseStoredDate accepts the two date encodings found in stored rows:
// date-only ("2006-01-02") and full RFC 3339 timestamps written by the
// legacy client. The result is pinned to noon UTC. An empty string parses
// to the zero time without error.
func parseStoredDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return domain.NormalizeDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return domain.NormalizeDate(t), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
