// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import "math"

// Soft mismatch labels, reported on ScoredCar.Mismatches.
const (
	mismatchSeating = "seating"
	mismatchFuel    = "fuel_type"
	mismatchBody    = "body_type"
)

// candidateSet is the filter stage's output: the surviving records with
// their accumulated soft penalties, plus the catalog the candidates came
// from (the scorer needs its price bounds).
type candidateSet struct {
	catalog    *Catalog
	records    []CarRecord
	penalties  []float64
	mismatches [][]string
}

// filterCatalog reduces the catalog to a candidate set per the profile's
// filter mode. It is a pure function over its inputs.
//
// In hard mode a car survives only if it satisfies every primary filter:
// price within [min, max] inclusive, seating at or above the requested
// minimum, and fuel/body matching when the profile specifies them. An
// empty hard-mode result is an *EmptyResultError carrying the soft-mode
// profile as the suggested recovery; the caller decides whether to retry.
//
// In soft mode only the budget ceiling is enforced, with cfg.BudgetTolerance
// headroom above the max (a car strictly unaffordable beyond that is never
// recommended). Seating, fuel, and body mismatches stay in the set and
// accrue a fixed cfg.SoftPenalty each, which the scorer deducts.
func filterCatalog(cat *Catalog, profile PreferenceProfile, cfg *Config) (*candidateSet, error) {
	set := &candidateSet{catalog: cat}

	switch profile.Mode {
	case FilterHard:
		for _, rec := range cat.records {
			if !matchesHard(rec, profile) {
				continue
			}
			set.records = append(set.records, rec)
			set.penalties = append(set.penalties, 0)
			set.mismatches = append(set.mismatches, nil)
		}
		if len(set.records) == 0 {
			return nil, &EmptyResultError{
				Profile:     profile,
				Suggestion:  profile.Relaxed(),
				CatalogSize: cat.Len(),
			}
		}
	case FilterSoft:
		ceiling := softCeiling(profile.Budget.Max, cfg.BudgetTolerance)
		for _, rec := range cat.records {
			if rec.Price > ceiling {
				continue
			}
			misses := softMismatches(rec, profile)
			set.records = append(set.records, rec)
			set.penalties = append(set.penalties, cfg.SoftPenalty*float64(len(misses)))
			set.mismatches = append(set.mismatches, misses)
		}
	}

	return set, nil
}

// matchesHard reports whether a record satisfies every primary filter.
func matchesHard(rec CarRecord, p PreferenceProfile) bool {
	if rec.Price < p.Budget.Min || rec.Price > p.Budget.Max {
		return false
	}
	if p.MinSeating > 0 && rec.Seating < p.MinSeating {
		return false
	}
	if p.Fuel != "" && rec.Fuel != p.Fuel {
		return false
	}
	if p.Body != "" && rec.Body != p.Body {
		return false
	}
	return true
}

// softMismatches lists the soft criteria a record fails, in a fixed order.
func softMismatches(rec CarRecord, p PreferenceProfile) []string {
	var misses []string
	if p.MinSeating > 0 && rec.Seating < p.MinSeating {
		misses = append(misses, mismatchSeating)
	}
	if p.Fuel != "" && rec.Fuel != p.Fuel {
		misses = append(misses, mismatchFuel)
	}
	if p.Body != "" && rec.Body != p.Body {
		misses = append(misses, mismatchBody)
	}
	return misses
}

// softCeiling computes the soft-mode budget ceiling: max budget plus the
// configured fractional tolerance, rounded down to whole rupees.
func softCeiling(maxBudget int64, tolerance float64) int64 {
	return int64(math.Floor(float64(maxBudget) * (1 + tolerance)))
}
