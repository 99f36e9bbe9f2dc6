// Package catalog holds the corrected view of the vehicle fleet.
//
// Upstream vehicle data carries a few known-bad identities: plates that were
// re-registered and names that no longer match the plate on the door. The
// catalog applies a fixed correction table once, at load time, so the rest of
// the system only ever sees canonical plates and names.
package catalog

import (
	"strings"

	"github.com/flotar/fleet-reserve/internal/domain"
)

// Corrections remaps known-incorrect vehicle identities to canonical ones.
// Plates maps an upstream plate to its canonical replacement; Names maps a
// canonical plate to the display name it should carry. Both lookups are by
// uppercase plate. The zero value applies no corrections.
//
// Corrections are injected at construction rather than held as package state
// so tests can supply their own tables.
type Corrections struct {
	Plates map[string]string
	Names  map[string]string
}

// DefaultCorrections is the correction table for the current fleet.
// The two plate remaps cover vehicles that were re-registered upstream
// without the fleet sheet being updated.
func DefaultCorrections() Corrections {
	return Corrections{
		Plates: map[string]string{
			"AE729GM": "AD459VF",
			"AF110DH": "AG919DW",
		},
		Names: map[string]string{
			"AD459VF": "Amarok AD459VF",
			"AH437DS": "Amarok AH437DS",
			"AG919DW": "Amarok AG919DW",
			"AG204HS": "Corolla AG204HS",
			"AG491EI": "Corolla AG491EI",
		},
	}
}

// Apply returns v with its plate uppercased and the correction tables applied:
// first the plate remap, then the name override keyed by the final plate.
// Apply is idempotent — applying it to an already-corrected vehicle returns
// the same vehicle.
func (c Corrections) Apply(v domain.Vehicle) domain.Vehicle {
	plate := strings.ToUpper(v.Plate)
	if canonical, ok := c.Plates[plate]; ok {
		plate = strings.ToUpper(canonical)
	}
	v.Plate = plate
	if name, ok := c.Names[plate]; ok {
		v.Name = name
	}
	return v
}

// Catalog is the read-only, corrected vehicle list.
type Catalog struct {
	vehicles []domain.Vehicle
}

// New builds a Catalog from raw upstream vehicles, applying the corrections
// to every entry. The input slice is not retained.
func New(raw []domain.Vehicle, corrections Corrections) *Catalog {
	vehicles := make([]domain.Vehicle, len(raw))
	for i, v := range raw {
		vehicles[i] = corrections.Apply(v)
	}
	return &Catalog{vehicles: vehicles}
}

// Vehicles returns all corrected vehicles in upstream order.
// The returned slice is a copy; callers may not mutate catalog state.
func (c *Catalog) Vehicles() []domain.Vehicle {
	out := make([]domain.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// ByID returns the vehicle with the given id.
// The second return is false when the id is not in the fleet.
func (c *Catalog) ByID(id int) (domain.Vehicle, bool) {
	for _, v := range c.vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vehicle{}, false
}

// Search filters the catalog by a free-text query and a vehicle type.
// The query matches case-insensitively against name and plate. An empty query
// matches everything; an empty or "all" vehicleType matches both types.
func (c *Catalog) Search(query string, vehicleType string) []domain.Vehicle {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Vehicle, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		if q != "" &&
			!strings.Contains(strings.ToLower(v.Name), q) &&
			!strings.Contains(strings.ToLower(v.Plate), q) {
			continue
		}
		if vehicleType != "" && vehicleType != "all" && string(v.Type) != vehicleType {
			continue
		}
		out = append(out, v)
	}
	return out
}
