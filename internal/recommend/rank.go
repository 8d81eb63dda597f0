// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import (
	"iter"
	"sort"
)

// rankLess is the total order used by the ranker: descending score, then
// higher normalized safety, then lower price, then lexical identifier.
// The identifier tie-break guarantees no pair is ever left undecided, so
// ranking identical inputs always yields identical output.
func rankLess(a, b ScoredCar) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Normalized[CriterionSafety] != b.Normalized[CriterionSafety] {
		return a.Normalized[CriterionSafety] > b.Normalized[CriterionSafety]
	}
	if a.Car.Price != b.Car.Price {
		return a.Car.Price < b.Car.Price
	}
	return a.Car.ID < b.Car.ID
}

// Rank orders a scored set into a lazy, restartable sequence, best car
// first. The sort happens once up front (the scored set is small relative
// to the catalog); iteration can be abandoned after any prefix, so callers
// take a top-N without materializing the rest.
func Rank(scored []ScoredCar) iter.Seq[ScoredCar] {
	ranked := make([]ScoredCar, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankLess(ranked[i], ranked[j])
	})

	return func(yield func(ScoredCar) bool) {
		for _, sc := range ranked {
			if !yield(sc) {
				return
			}
		}
	}
}

// topN collects the first n cars from a ranked sequence. n <= 0 collects
// everything. The result is never nil so an empty set serializes as [].
func topN(seq iter.Seq[ScoredCar], n int) []ScoredCar {
	out := []ScoredCar{}
	for sc := range seq {
		out = append(out, sc)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
