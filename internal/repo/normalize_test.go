package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotar/fleet-reserve/internal/domain"
)

var trip = domain.DateRange{
	Start: domain.NewDate(2024, time.March, 10),
	End:   domain.NewDate(2024, time.March, 15),
}

func TestDecodeHotelDetails_EmptyBlob(t *testing.T) {
	for _, blob := range [][]byte{nil, []byte(""), []byte("null")} {
		got, err := decodeHotelDetails(blob, trip)

		require.NoError(t, err)
		assert.False(t, got.Required)
		assert.True(t, got.CheckIn.Equal(trip.Start), "check-in defaults to trip start")
		assert.True(t, got.CheckOut.Equal(trip.End), "check-out defaults to trip end")
	}
}

func TestDecodeHotelDetails_NotRequiredIgnoresRest(t *testing.T) {
	blob := []byte(`{"required": false, "passengers": [{"name": "stray"}], "suggestions": "ignored"}`)

	got, err := decodeHotelDetails(blob, trip)

	require.NoError(t, err)
	assert.False(t, got.Required)
	assert.Empty(t, got.Passengers)
	assert.Empty(t, got.Suggestions)
}

func TestDecodeHotelDetails_CamelCaseLegacyRow(t *testing.T) {
	// Shape written by the legacy client: camelCase keys, RFC 3339 dates.
	blob := []byte(`{
		"required": true,
		"passengers": [{"name": "Laura Pérez"}],
		"rooms": [{"quantity": 1, "type": "double"}],
		"checkIn": "2024-03-11T00:00:00.000Z",
		"checkOut": "2024-03-14T00:00:00.000Z",
		"suggestions": "cerca del centro",
		"accountingAccount": "CC-104"
	}`)

	got, err := decodeHotelDetails(blob, trip)

	require.NoError(t, err)
	assert.True(t, got.Required)
	require.Len(t, got.Passengers, 1)
	assert.Equal(t, "Laura Pérez", got.Passengers[0].Name)
	require.Len(t, got.Rooms, 1)
	assert.Equal(t, domain.RoomDouble, got.Rooms[0].Type)
	assert.True(t, got.CheckIn.Equal(domain.NewDate(2024, time.March, 11)))
	assert.True(t, got.CheckOut.Equal(domain.NewDate(2024, time.March, 14)))
	assert.Equal(t, "CC-104", got.AccountingAccount)
}

func TestDecodeHotelDetails_SnakeCaseRow(t *testing.T) {
	blob := []byte(`{
		"required": true,
		"passengers": [{"name": "Martín Sosa"}],
		"rooms": [{"quantity": 2, "type": "single"}],
		"check_in": "2024-03-11",
		"check_out": "2024-03-14",
		"accounting_account": "CC-200"
	}`)

	got, err := decodeHotelDetails(blob, trip)

	require.NoError(t, err)
	assert.True(t, got.CheckIn.Equal(domain.NewDate(2024, time.March, 11)))
	assert.True(t, got.CheckOut.Equal(domain.NewDate(2024, time.March, 14)))
	assert.Equal(t, "CC-200", got.AccountingAccount)
}

func TestDecodeHotelDetails_BadDate(t *testing.T) {
	blob := []byte(`{"required": true, "passengers": [{"name": "x"}], "rooms": [{"quantity": 1, "type": "single"}], "checkIn": "11/03/2024", "checkOut": "2024-03-14"}`)

	_, err := decodeHotelDetails(blob, trip)

	assert.Error(t, err)
}

func TestEncodeDecodeHotelDetails_RoundTrip(t *testing.T) {
	in := &domain.HotelDetails{
		Required:          true,
		Passengers:        []domain.HotelPassenger{{Name: "Laura Pérez"}},
		Rooms:             []domain.HotelRoom{{Quantity: 1, Type: domain.RoomSingle}},
		CheckIn:           domain.NewDate(2024, time.March, 11),
		CheckOut:          domain.NewDate(2024, time.March, 14),
		Suggestions:       "planta baja",
		AccountingAccount: "CC-104",
	}

	blob, err := encodeHotelDetails(in)
	require.NoError(t, err)

	got, err := decodeHotelDetails(blob, trip)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestEncodeHotelDetails_NilMeansNotRequired(t *testing.T) {
	blob, err := encodeHotelDetails(nil)
	require.NoError(t, err)

	got, err := decodeHotelDetails(blob, trip)
	require.NoError(t, err)
	assert.False(t, got.Required)
}

func TestParseStoredDate_NormalizesToNoon(t *testing.T) {
	got, err := parseStoredDate("2024-03-11T23:59:00Z")

	require.NoError(t, err)
	assert.Equal(t, 12, got.Hour())
	assert.Equal(t, 11, got.Day())
}
