// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

// normalizedValue returns the criterion's value for a record, rescaled to
// [0, 1]. Direct attributes are scaled by the declared max; ownership cost
// is inverted since lower is better; the price axis is inverted and
// min-max scaled over the whole catalog (see Catalog.priceAxis).
func normalizedValue(cat *Catalog, rec CarRecord, c Criterion) float64 {
	switch c {
	case CriterionPerformance:
		return rec.Performance / AttributeMax
	case CriterionEconomy:
		return rec.Economy / AttributeMax
	case CriterionSafety:
		return rec.Safety / AttributeMax
	case CriterionComfort:
		return rec.Comfort / AttributeMax
	case CriterionOwnership:
		return 1.0 - rec.OwnershipCost/AttributeMax
	case CriterionPrice:
		return cat.priceAxis(rec.Price)
	default:
		return 0
	}
}

// normalizedWeights returns the profile's weights rescaled to sum to 1,
// in the fixed Criteria order. An all-zero weight vector falls back to the
// unweighted arithmetic mean, so a weightless profile still yields a
// well-defined uniform ranking instead of dividing by zero.
func normalizedWeights(w Weights) []float64 {
	out := make([]float64, len(Criteria))
	sum := w.Sum()
	if sum == 0 {
		uniform := 1.0 / float64(len(Criteria))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i, c := range Criteria {
		out[i] = w.get(c) / sum
	}
	return out
}

// scoreCandidates computes a ScoredCar for every candidate. The weighted
// sum iterates Criteria in its fixed order so that floating-point summation
// is reproducible across runs; soft penalties are subtracted afterwards and
// the result is clamped at 0. With all normalized values and weights in
// [0, 1] the output score is in [0, 1]. Ties are possible here and are
// broken by the ranker, not the scorer.
func scoreCandidates(set *candidateSet, profile PreferenceProfile) []ScoredCar {
	weights := normalizedWeights(profile.Weights)
	scored := make([]ScoredCar, 0, len(set.records))

	for i, rec := range set.records {
		normalized := make(map[Criterion]float64, len(Criteria))
		breakdown := make(map[Criterion]float64, len(Criteria))

		var sum float64
		for j, c := range Criteria {
			value := normalizedValue(set.catalog, rec, c)
			contribution := weights[j] * value
			normalized[c] = value
			breakdown[c] = contribution
			sum += contribution
		}

		penalty := set.penalties[i]
		score := sum - penalty
		if score < 0 {
			score = 0
		}

		scored = append(scored, ScoredCar{
			Car:        rec,
			Score:      score,
			Normalized: normalized,
			Breakdown:  breakdown,
			Penalty:    penalty,
			Mismatches: set.mismatches[i],
		})
	}

	return scored
}
