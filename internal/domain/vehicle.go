// Package domain contains the core data types for the fleet reservation
// backend. This package has zero external dependencies beyond uuid and is
// imported by every other internal package (catalog, repo, service, handler).
package domain

// VehicleType classifies a fleet vehicle. The fleet only carries two kinds.
type VehicleType string

const (
	VehiclePickup VehicleType = "pickup"
	VehicleSedan  VehicleType = "sedan"
)

// Vehicle is one unit of the corporate fleet.
// Vehicles are read-only within this system: they are seeded by migration and
// never created, mutated, or deleted by the core. Plate is always stored
// uppercase so it can be compared directly.
type Vehicle struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Plate    string      `json:"plate"`
	Type     VehicleType `json:"type"`
	Capacity int         `json:"capacity"`
	FuelType string      `json:"fuelType"`
	Features []string    `json:"features,omitempty"`
}
