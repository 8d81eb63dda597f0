// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import "fmt"

// Catalog is the immutable collection of car records the engine operates
// on. It is built once at process startup and never mutated afterwards;
// NewCatalog copies its input so callers cannot alias the internal slice.
type Catalog struct {
	records  []CarRecord
	index    map[string]int
	minPrice int64
	maxPrice int64
}

// NewCatalog validates the records and builds the catalog. It returns a
// *SchemaError on a duplicate identifier, an empty identifier, a negative
// price or seating, or an attribute outside [0, AttributeMax].
func NewCatalog(records []CarRecord) (*Catalog, error) {
	cat := &Catalog{
		records: make([]CarRecord, len(records)),
		index:   make(map[string]int, len(records)),
	}
	copy(cat.records, records)

	for i, rec := range cat.records {
		row := i + 1
		if rec.ID == "" {
			return nil, &SchemaError{Column: "id", Row: row, Reason: "identifier is empty"}
		}
		if _, dup := cat.index[rec.ID]; dup {
			return nil, &SchemaError{Column: "id", Row: row, Reason: fmt.Sprintf("duplicate identifier %q", rec.ID)}
		}
		if rec.Price < 0 {
			return nil, &SchemaError{Column: "price", Row: row, Reason: fmt.Sprintf("negative price %d", rec.Price)}
		}
		if rec.Seating <= 0 {
			return nil, &SchemaError{Column: "seating", Row: row, Reason: fmt.Sprintf("seating capacity %d is not positive", rec.Seating)}
		}
		if _, err := ParseFuelType(string(rec.Fuel)); err != nil || rec.Fuel == "" {
			return nil, &SchemaError{Column: "fuel_type", Row: row, Reason: fmt.Sprintf("invalid fuel type %q", rec.Fuel)}
		}
		if _, err := ParseBodyType(string(rec.Body)); err != nil || rec.Body == "" {
			return nil, &SchemaError{Column: "body_type", Row: row, Reason: fmt.Sprintf("invalid body type %q", rec.Body)}
		}
		for _, attr := range []struct {
			col string
			val float64
		}{
			{"performance", rec.Performance},
			{"economy", rec.Economy},
			{"safety", rec.Safety},
			{"comfort", rec.Comfort},
			{"ownership_cost", rec.OwnershipCost},
		} {
			if attr.val < 0 || attr.val > AttributeMax {
				return nil, &SchemaError{
					Column: attr.col,
					Row:    row,
					Reason: fmt.Sprintf("value %v outside [0, %v]", attr.val, AttributeMax),
				}
			}
		}
		cat.index[rec.ID] = i

		if i == 0 || rec.Price < cat.minPrice {
			cat.minPrice = rec.Price
		}
		if rec.Price > cat.maxPrice {
			cat.maxPrice = rec.Price
		}
	}

	return cat, nil
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns a copy of the catalog's records. The catalog itself
// stays immutable.
func (c *Catalog) Records() []CarRecord {
	out := make([]CarRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Get returns the record with the given identifier.
func (c *Catalog) Get(id string) (CarRecord, bool) {
	i, ok := c.index[id]
	if !ok {
		return CarRecord{}, false
	}
	return c.records[i], true
}

// priceAxis returns the inverted, normalized price value in [0, 1] for a
// listed price: cheaper cars score higher. Prices are min-max scaled over
// the whole catalog so the axis is stable regardless of which candidates
// survive filtering. A catalog with a single price level scores 1.0, the
// same convention the rest of the axes use for "no spread".
func (c *Catalog) priceAxis(price int64) float64 {
	if c.maxPrice == c.minPrice {
		return 1.0
	}
	norm := float64(price-c.minPrice) / float64(c.maxPrice-c.minPrice)
	return 1.0 - norm
}
