package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// ReservationRepo defines the persistence operations for reservations.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// Reservations are immutable after creation: the interface deliberately has
// no update method. Cancellation is deletion.
type ReservationRepo interface {
	// Create inserts a new reservation and returns the persisted record
	// with the DB-generated id populated.
	Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error)

	// List returns all reservations ordered by start date ascending.
	List(ctx context.Context) ([]domain.Reservation, error)

	// Delete removes a reservation by id. Returns domain.ErrNotFound if it
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgReservationRepo struct {
	db db
}

// NewReservationRepo constructs a ReservationRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewReservationRepo(db db) ReservationRepo {
	return &pgReservationRepo{db: db}
}

const reservationColumns = `id, vehicle_id, vehicle_name, user_email, destination, attendees, start_date, end_date, hotel_details`

// Create inserts a new reservation row and returns the persisted record.
func (r *pgReservationRepo) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	attendees, err := json.Marshal(res.Details.Attendees)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Create: encode attendees: %w", err)
	}
	hotel, err := encodeHotelDetails(res.HotelDetails)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Create: %w", err)
	}

	const q = `
		INSERT INTO reservations
			(vehicle_id, vehicle_name, user_email, destination, attendees, start_date, end_date, hotel_details)
		VALUES
			(@vehicle_id, @vehicle_name, @user_email, @destination, @attendees, @start_date, @end_date, @hotel_details)
		RETURNING ` + reservationColumns

	args := pgx.NamedArgs{
		"vehicle_id":    res.VehicleID,
		"vehicle_name":  res.VehicleName,
		"user_email":    res.Details.Email,
		"destination":   res.Details.Destination,
		"attendees":     attendees,
		"start_date":    res.Trip.Start,
		"end_date":      res.Trip.End,
		"hotel_details": hotel,
	}

	row := r.db.QueryRow(ctx, q, args)
	created, err := scanReservation(row)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("repo.ReservationRepo.Create: %w", err)
	}
	return created, nil
}

// List returns all reservations ordered by start date (earliest first).
func (r *pgReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	const q = `
		SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY start_date, created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.List: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReservationRepo.List: scan: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.List: rows: %w", err)
	}

	return reservations, nil
}

// Delete removes a reservation by primary key.
func (r *pgReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM reservations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ReservationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReservationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanReservation
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanReservation maps a single database row into a domain.Reservation.
// The primary contact name is derived from the first attendee, matching how
// the rows were originally written; hotel details go through the shape
// normalizer so legacy key casing never leaks past this package.
func scanReservation(s scanner) (domain.Reservation, error) {
	var (
		res       domain.Reservation
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		attendees []byte
		hotel     []byte
	)

	err := s.Scan(&id, &res.VehicleID, &res.VehicleName, &res.Details.Email,
		&res.Details.Destination, &attendees, &startDate, &endDate, &hotel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reservation{}, domain.ErrNotFound
		}
		return domain.Reservation{}, err
	}

	res.ID = uuid.UUID(id.Bytes)
	res.Trip = domain.NewDateRange(startDate.Time, endDate.Time)

	if len(attendees) > 0 && string(attendees) != "null" {
		if err := json.Unmarshal(attendees, &res.Details.Attendees); err != nil {
			return domain.Reservation{}, fmt.Errorf("decode attendees: %w", err)
		}
	}
	if len(res.Details.Attendees) > 0 {
		res.Details.Name = res.Details.Attendees[0]
	}

	res.HotelDetails, err = decodeHotelDetails(hotel, res.Trip)
	if err != nil {
		return domain.Reservation{}, err
	}

	return res, nil
}
