package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReservationDetails carries the trip-level contact and attendee data.
// Attendees is ordered; the first entry is the primary contact and must equal
// Name at submission time.
type ReservationDetails struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Destination string   `json:"destination"`
	Attendees   []string `json:"attendees"`
}

// HotelPassenger is one person on the lodging request.
type HotelPassenger struct {
	Name string `json:"name"`
}

// RoomType is the hotel room category. Only two are bookable.
type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
)

// HotelRoom is one line of the room request: how many rooms of which type.
type HotelRoom struct {
	Quantity int      `json:"quantity"`
	Type     RoomType `json:"type"`
}

// HotelDetails is the optional lodging block of a reservation.
// When Required is false the other fields are semantically empty, but CheckIn
// and CheckOut still default to the trip's dates so the stored shape is
// uniform. When Required is true, CheckIn <= CheckOut and both must fall
// within the enclosing trip window.
type HotelDetails struct {
	Required          bool             `json:"required"`
	Passengers        []HotelPassenger `json:"passengers"`
	Rooms             []HotelRoom      `json:"rooms"`
	CheckIn           time.Time        `json:"checkIn"`
	CheckOut          time.Time        `json:"checkOut"`
	Suggestions       string           `json:"suggestions"`
	AccountingAccount string           `json:"accountingAccount,omitempty"`
}

// Stay returns the lodging window as a normalized date range.
func (h HotelDetails) Stay() DateRange {
	return NewDateRange(h.CheckIn, h.CheckOut)
}

// Reservation is one immutable booking of a vehicle for a trip window.
// VehicleName is a denormalized snapshot of the vehicle's corrected name at
// booking time — it is never re-derived later, so renaming a vehicle does not
// rewrite history. The store assigns ID on creation; the only mutation after
// that is deletion (cancellation).
type Reservation struct {
	ID           uuid.UUID          `json:"id"`
	VehicleID    int                `json:"vehicleId"`
	VehicleName  string             `json:"vehicleName"`
	Details      ReservationDetails `json:"details"`
	Trip         DateRange          `json:"trip"`
	HotelDetails *HotelDetails      `json:"hotelDetails,omitempty"`
}
