// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

// Compare builds a side-by-side comparison table for the selected
// identifiers out of a previously scored set.
//
// The selection must contain at least two identifiers
// (ErrSelectionTooSmall otherwise) and every identifier must exist in the
// scored set, yielding *UnknownIdentifierError rather than a silent skip.
// Rows appear in the order the identifiers were supplied, preserving the
// user's chosen comparison order regardless of rank.
func Compare(scored []ScoredCar, ids []string) (*ComparisonTable, error) {
	if len(ids) < 2 {
		return nil, ErrSelectionTooSmall
	}

	byID := make(map[string]ScoredCar, len(scored))
	for _, sc := range scored {
		byID[sc.Car.ID] = sc
	}

	table := &ComparisonTable{
		Criteria: Criteria,
		Rows:     make([]ComparisonRow, 0, len(ids)),
	}
	for _, id := range ids {
		sc, ok := byID[id]
		if !ok {
			return nil, &UnknownIdentifierError{ID: id}
		}
		table.Rows = append(table.Rows, ComparisonRow{
			Car:        sc.Car,
			Score:      sc.Score,
			Normalized: sc.Normalized,
			Breakdown:  sc.Breakdown,
		})
	}

	return table, nil
}
