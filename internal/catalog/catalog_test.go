package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotar/fleet-reserve/internal/catalog"
	"github.com/flotar/fleet-reserve/internal/domain"
)

func rawFleet() []domain.Vehicle {
	return []domain.Vehicle{
		{ID: 1, Name: "Amarok Vieja", Plate: "ae729gm", Type: domain.VehiclePickup, Capacity: 5, FuelType: "diesel"},
		{ID: 2, Name: "Amarok AH437DS", Plate: "AH437DS", Type: domain.VehiclePickup, Capacity: 5, FuelType: "diesel"},
		{ID: 3, Name: "Corolla Gris", Plate: "AG204HS", Type: domain.VehicleSedan, Capacity: 4, FuelType: "nafta"},
		{ID: 4, Name: "Hilux SW4", Plate: "AC101XX", Type: domain.VehiclePickup, Capacity: 7, FuelType: "diesel"},
	}
}

func TestCorrections_Apply_PlateThenName(t *testing.T) {
	c := catalog.DefaultCorrections()

	got := c.Apply(domain.Vehicle{ID: 1, Name: "Amarok Vieja", Plate: "ae729gm"})

	// The plate remap wins first, then the name override keys off the
	// canonical plate.
	assert.Equal(t, "AD459VF", got.Plate)
	assert.Equal(t, "Amarok AD459VF", got.Name)
}

func TestCorrections_Apply_Idempotent(t *testing.T) {
	c := catalog.DefaultCorrections()
	raw := domain.Vehicle{ID: 1, Name: "Amarok Vieja", Plate: "AF110DH"}

	once := c.Apply(raw)
	twice := c.Apply(once)

	assert.Equal(t, once, twice)
}

func TestCorrections_Apply_UnknownPlateOnlyUppercases(t *testing.T) {
	c := catalog.DefaultCorrections()

	got := c.Apply(domain.Vehicle{ID: 9, Name: "Hilux SW4", Plate: "ac101xx"})

	assert.Equal(t, "AC101XX", got.Plate)
	assert.Equal(t, "Hilux SW4", got.Name)
}

func TestCorrections_ZeroValueIsNoOp(t *testing.T) {
	var c catalog.Corrections

	got := c.Apply(domain.Vehicle{ID: 1, Name: "Anything", Plate: "AA000AA"})

	assert.Equal(t, "Anything", got.Name)
	assert.Equal(t, "AA000AA", got.Plate)
}

func TestCatalog_AppliesCorrectionsAtLoad(t *testing.T) {
	cat := catalog.New(rawFleet(), catalog.DefaultCorrections())

	v, ok := cat.ByID(1)

	require.True(t, ok)
	assert.Equal(t, "AD459VF", v.Plate)
	assert.Equal(t, "Amarok AD459VF", v.Name)
}

func TestCatalog_ByID_Missing(t *testing.T) {
	cat := catalog.New(rawFleet(), catalog.DefaultCorrections())

	_, ok := cat.ByID(99)

	assert.False(t, ok)
}

func TestCatalog_Vehicles_ReturnsCopy(t *testing.T) {
	cat := catalog.New(rawFleet(), catalog.DefaultCorrections())

	first := cat.Vehicles()
	first[0].Name = "mutated"

	assert.NotEqual(t, "mutated", cat.Vehicles()[0].Name)
}

func TestCatalog_Search(t *testing.T) {
	cat := catalog.New(rawFleet(), catalog.DefaultCorrections())

	tests := []struct {
		name    string
		query   string
		vType   string
		wantIDs []int
	}{
		{"no filters", "", "", []int{1, 2, 3, 4}},
		{"all type", "", "all", []int{1, 2, 3, 4}},
		{"by type sedan", "", "sedan", []int{3}},
		{"by type pickup", "", "pickup", []int{1, 2, 4}},
		{"by name fragment", "amarok", "", []int{1, 2}},
		{"by corrected plate", "ad459", "", []int{1}},
		{"name and type", "corolla", "pickup", nil},
		{"no match", "kangoo", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cat.Search(tt.query, tt.vType)
			ids := make([]int, 0, len(got))
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			if tt.wantIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}
