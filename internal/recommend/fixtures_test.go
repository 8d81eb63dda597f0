// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import (
	"testing"

	"github.com/rs/zerolog"
)

// testRecords is a small but varied catalog fixture: hatchback to MUV,
// petrol to electric, 5 to 7 seats, 5L to 20L.
func testRecords() []CarRecord {
	return []CarRecord{
		{
			ID: "alto", Make: "Maruti", Model: "Alto", Price: 500000, Seating: 5,
			Fuel: FuelPetrol, Body: BodyHatchback,
			Performance: 3, Economy: 8, Safety: 4, Comfort: 3, OwnershipCost: 2,
		},
		{
			ID: "swift", Make: "Maruti", Model: "Swift", Price: 800000, Seating: 5,
			Fuel: FuelPetrol, Body: BodyHatchback,
			Performance: 5, Economy: 8, Safety: 5, Comfort: 5, OwnershipCost: 3,
		},
		{
			ID: "city", Make: "Honda", Model: "City", Price: 1200000, Seating: 5,
			Fuel: FuelPetrol, Body: BodySedan,
			Performance: 6, Economy: 7, Safety: 7, Comfort: 7, OwnershipCost: 4,
		},
		{
			ID: "nexon-ev", Make: "Tata", Model: "Nexon EV", Price: 1500000, Seating: 5,
			Fuel: FuelElectric, Body: BodySUV,
			Performance: 7, Economy: 9, Safety: 9, Comfort: 7, OwnershipCost: 3,
		},
		{
			ID: "creta", Make: "Hyundai", Model: "Creta", Price: 1600000, Seating: 5,
			Fuel: FuelDiesel, Body: BodySUV,
			Performance: 7, Economy: 6, Safety: 7, Comfort: 8, OwnershipCost: 5,
		},
		{
			ID: "innova", Make: "Toyota", Model: "Innova", Price: 2000000, Seating: 7,
			Fuel: FuelDiesel, Body: BodyMUV,
			Performance: 6, Economy: 5, Safety: 8, Comfort: 8, OwnershipCost: 6,
		},
	}
}

// newTestCatalog builds the fixture catalog, failing the test on error.
func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog(testRecords())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return cat
}

// newTestEngine builds an engine with default config and a silent logger.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

// anyBudget covers the whole fixture price range.
func anyBudget() BudgetRange {
	return BudgetRange{Min: 0, Max: 5000000}
}

// idsOf extracts identifiers in order.
func idsOf(cars []ScoredCar) []string {
	ids := make([]string, len(cars))
	for i, sc := range cars {
		ids[i] = sc.Car.ID
	}
	return ids
}

// equalIDs compares two identifier sequences.
func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
