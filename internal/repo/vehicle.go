// Package repo contains all database access for the fleet reservation
// backend. Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VehicleRepo reads the fleet from the store. Vehicles are seeded by
// migration and never written by the application, so listing is the whole
// surface.
type VehicleRepo interface {
	// List returns every vehicle ordered by id, uncorrected — identity
	// corrections are the catalog's job.
	List(ctx context.Context) ([]domain.Vehicle, error)
}

type pgVehicleRepo struct {
	db db
}

// NewVehicleRepo constructs a VehicleRepo backed by the provided db connection.
func NewVehicleRepo(db db) VehicleRepo {
	return &pgVehicleRepo{db: db}
}

func (r *pgVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	const q = `
		SELECT id, name, plate, type, capacity, fuel_type, features
		FROM vehicles
		ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var (
			v        domain.Vehicle
			vType    string
			features []byte
		)
		if err := rows.Scan(&v.ID, &v.Name, &v.Plate, &vType, &v.Capacity, &v.FuelType, &features); err != nil {
			return nil, fmt.Errorf("repo.VehicleRepo.List: scan: %w", err)
		}
		v.Type = domain.VehicleType(vType)
		if len(features) > 0 && string(features) != "null" {
			if err := json.Unmarshal(features, &v.Features); err != nil {
				return nil, fmt.Errorf("repo.VehicleRepo.List: decode features: %w", err)
			}
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VehicleRepo.List: rows: %w", err)
	}

	return vehicles, nil
}
