// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import (
	"fmt"
	"strings"
	"time"
)

// AttributeMax is the upper bound of the declared attribute scale.
// All six car attributes are scored on [0, AttributeMax].
const AttributeMax = 10.0

// FuelType enumerates the supported fuel categories.
type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelCNG      FuelType = "cng"
)

// FuelTypes lists all valid fuel types in a fixed order.
var FuelTypes = []FuelType{FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid, FuelCNG}

// ParseFuelType converts a string to a FuelType.
// The empty string is valid and means "no constraint".
func ParseFuelType(s string) (FuelType, error) {
	if s == "" {
		return "", nil
	}
	ft := FuelType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range FuelTypes {
		if ft == known {
			return ft, nil
		}
	}
	return "", fmt.Errorf("unknown fuel type %q", s)
}

// BodyType enumerates the supported body styles.
type BodyType string

const (
	BodySedan       BodyType = "sedan"
	BodySUV         BodyType = "suv"
	BodyHatchback   BodyType = "hatchback"
	BodyMUV         BodyType = "muv"
	BodyCoupe       BodyType = "coupe"
	BodyConvertible BodyType = "convertible"
	BodyPickup      BodyType = "pickup"
	BodyWagon       BodyType = "wagon"
)

// BodyTypes lists all valid body types in a fixed order.
var BodyTypes = []BodyType{
	BodySedan, BodySUV, BodyHatchback, BodyMUV,
	BodyCoupe, BodyConvertible, BodyPickup, BodyWagon,
}

// ParseBodyType converts a string to a BodyType.
// The empty string is valid and means "no constraint".
func ParseBodyType(s string) (BodyType, error) {
	if s == "" {
		return "", nil
	}
	bt := BodyType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range BodyTypes {
		if bt == known {
			return bt, nil
		}
	}
	return "", fmt.Errorf("unknown body type %q", s)
}

// FilterMode selects how primary filters are applied.
type FilterMode int

const (
	// FilterHard excludes any car that misses a primary filter.
	FilterHard FilterMode = iota
	// FilterSoft enforces only the budget ceiling (with tolerance) and
	// converts other mismatches into score penalties.
	FilterSoft
)

// String returns a human-readable name for the filter mode.
func (m FilterMode) String() string {
	switch m {
	case FilterHard:
		return "hard"
	case FilterSoft:
		return "soft"
	default:
		return "unknown"
	}
}

// ParseFilterMode converts a string to a FilterMode.
// The empty string defaults to hard mode.
func ParseFilterMode(s string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hard":
		return FilterHard, nil
	case "soft":
		return FilterSoft, nil
	default:
		return FilterHard, fmt.Errorf("unknown filter mode %q", s)
	}
}

// Criterion identifies one scoring axis.
type Criterion string

const (
	CriterionPerformance Criterion = "performance"
	CriterionEconomy     Criterion = "economy"
	CriterionSafety      Criterion = "safety"
	CriterionComfort     Criterion = "comfort"
	CriterionOwnership   Criterion = "ownership_cost"
	CriterionPrice       Criterion = "price"
)

// Criteria lists the scoring axes in their fixed iteration order.
// The order is load-bearing: summation follows it so that identical inputs
// produce bit-identical scores across runs.
var Criteria = []Criterion{
	CriterionPerformance,
	CriterionEconomy,
	CriterionSafety,
	CriterionComfort,
	CriterionOwnership,
	CriterionPrice,
}

// CarRecord is one immutable catalog entry. Price is in whole rupees.
// The six attribute scores lie in [0, AttributeMax]; ownership cost is
// a cost score where lower is better.
type CarRecord struct {
	// ID uniquely identifies the car within the catalog.
	ID string `json:"id"`

	// Make is the manufacturer name.
	Make string `json:"make"`

	// Model is the model name.
	Model string `json:"model"`

	// Price is the listed price in INR.
	Price int64 `json:"price"`

	// Seating is the seating capacity.
	Seating int `json:"seating"`

	// Fuel is the normalized fuel category.
	Fuel FuelType `json:"fuel_type"`

	// Body is the normalized body style.
	Body BodyType `json:"body_type"`

	// Performance is the performance score in [0, AttributeMax].
	Performance float64 `json:"performance"`

	// Economy is the fuel economy score in [0, AttributeMax].
	Economy float64 `json:"economy"`

	// Safety is the safety score in [0, AttributeMax].
	Safety float64 `json:"safety"`

	// Comfort is the comfort score in [0, AttributeMax].
	Comfort float64 `json:"comfort"`

	// OwnershipCost is the running-cost score in [0, AttributeMax].
	// Lower is better; the scorer inverts it.
	OwnershipCost float64 `json:"ownership_cost"`
}

// Name returns "Make Model" for display and logging.
func (c CarRecord) Name() string {
	return strings.TrimSpace(c.Make + " " + c.Model)
}

// BudgetRange is an inclusive price window in INR.
type BudgetRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Weights holds one non-negative weight per scoring criterion.
// Weights need not sum to 1; the scorer normalizes internally.
// An all-zero Weights is valid and yields the uniform-mean ranking.
type Weights struct {
	Performance      float64 `json:"performance"`
	Economy          float64 `json:"economy"`
	Safety           float64 `json:"safety"`
	Comfort          float64 `json:"comfort"`
	OwnershipCost    float64 `json:"ownership_cost"`
	PriceSensitivity float64 `json:"price_sensitivity"`
}

// get returns the weight for a criterion. PriceSensitivity multiplies the
// inverted price axis.
func (w Weights) get(c Criterion) float64 {
	switch c {
	case CriterionPerformance:
		return w.Performance
	case CriterionEconomy:
		return w.Economy
	case CriterionSafety:
		return w.Safety
	case CriterionComfort:
		return w.Comfort
	case CriterionOwnership:
		return w.OwnershipCost
	case CriterionPrice:
		return w.PriceSensitivity
	default:
		return 0
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, c := range Criteria {
		sum += w.get(c)
	}
	return sum
}

// validate rejects negative weights.
func (w Weights) validate() error {
	for _, c := range Criteria {
		if v := w.get(c); v < 0 {
			return fmt.Errorf("weight %s is negative (%v)", c, v)
		}
	}
	return nil
}

// PreferenceProfile captures one user's filter constraints and scoring
// weights. Construct it once per recommendation request and validate it
// before use; the engine rejects invalid profiles before filtering begins.
type PreferenceProfile struct {
	// Budget is the inclusive price window.
	Budget BudgetRange `json:"budget"`

	// MinSeating is the minimum required seating capacity. Zero means
	// no seating constraint.
	MinSeating int `json:"min_seating"`

	// Fuel constrains the fuel type when non-empty.
	Fuel FuelType `json:"fuel_type,omitempty"`

	// Body constrains the body style when non-empty.
	Body BodyType `json:"body_type,omitempty"`

	// Mode selects hard or soft filtering.
	Mode FilterMode `json:"mode"`

	// Weights are the per-criterion scoring weights.
	Weights Weights `json:"weights"`
}

// Validate checks the profile's invariants. It returns an
// *InvalidProfileError naming the first violated constraint.
func (p PreferenceProfile) Validate() error {
	if p.Budget.Min < 0 {
		return &InvalidProfileError{Field: "budget.min", Reason: fmt.Sprintf("must be non-negative, got %d", p.Budget.Min)}
	}
	if p.Budget.Min > p.Budget.Max {
		return &InvalidProfileError{Field: "budget", Reason: fmt.Sprintf("min %d exceeds max %d", p.Budget.Min, p.Budget.Max)}
	}
	if p.MinSeating < 0 {
		return &InvalidProfileError{Field: "min_seating", Reason: fmt.Sprintf("must be non-negative, got %d", p.MinSeating)}
	}
	if p.Fuel != "" {
		if _, err := ParseFuelType(string(p.Fuel)); err != nil {
			return &InvalidProfileError{Field: "fuel_type", Reason: err.Error()}
		}
	}
	if p.Body != "" {
		if _, err := ParseBodyType(string(p.Body)); err != nil {
			return &InvalidProfileError{Field: "body_type", Reason: err.Error()}
		}
	}
	if p.Mode != FilterHard && p.Mode != FilterSoft {
		return &InvalidProfileError{Field: "mode", Reason: fmt.Sprintf("unknown filter mode %d", p.Mode)}
	}
	if err := p.Weights.validate(); err != nil {
		return &InvalidProfileError{Field: "weights", Reason: err.Error()}
	}
	return nil
}

// Relaxed returns a copy of the profile with soft filtering enabled.
// Used as the suggested recovery when hard filtering yields no candidates.
func (p PreferenceProfile) Relaxed() PreferenceProfile {
	p.Mode = FilterSoft
	return p
}

// ScoredCar pairs a CarRecord with its computed score and the per-criterion
// breakdown. Never mutated after the scorer creates it.
type ScoredCar struct {
	// Car is the underlying catalog record.
	Car CarRecord `json:"car"`

	// Score is the final score in [0, 1], after soft penalties.
	Score float64 `json:"score"`

	// Normalized holds the per-criterion normalized values in [0, 1].
	Normalized map[Criterion]float64 `json:"normalized"`

	// Breakdown holds the per-criterion weighted contributions.
	// The contributions sum to Score + Penalty.
	Breakdown map[Criterion]float64 `json:"breakdown"`

	// Penalty is the total soft-filter deduction applied.
	Penalty float64 `json:"penalty,omitempty"`

	// Mismatches names the soft criteria the car failed, if any.
	Mismatches []string `json:"mismatches,omitempty"`
}

// Request is one recommendation call.
type Request struct {
	// Profile is the user's validated preference profile.
	Profile PreferenceProfile `json:"profile"`

	// K limits the number of returned cars. Zero means the engine default.
	K int `json:"k,omitempty"`

	// RequestID correlates engine logs with the calling request.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of one recommendation call.
type Response struct {
	// Cars is the ranked result, best first, at most K entries.
	Cars []ScoredCar `json:"cars"`

	// Metadata describes how the response was produced.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata describes one recommendation run.
type ResponseMetadata struct {
	RequestID      string    `json:"request_id,omitempty"`
	Mode           string    `json:"mode"`
	CatalogSize    int       `json:"catalog_size"`
	CandidateCount int       `json:"candidate_count"`
	Returned       int       `json:"returned"`
	LatencyMS      float64   `json:"latency_ms"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ComparisonRow is one car's column in a comparison table.
type ComparisonRow struct {
	// Car is the raw catalog record.
	Car CarRecord `json:"car"`

	// Score is the car's final score within the compared scored set.
	Score float64 `json:"score"`

	// Normalized holds the per-criterion normalized values.
	Normalized map[Criterion]float64 `json:"normalized"`

	// Breakdown holds the per-criterion weighted contributions.
	Breakdown map[Criterion]float64 `json:"breakdown"`
}

// ComparisonTable is a side-by-side attribute and score breakdown for a
// user-chosen subset of scored cars. Rows appear in the order the caller
// supplied the identifiers, not in rank order.
type ComparisonTable struct {
	// Criteria is the fixed criterion order for rendering.
	Criteria []Criterion `json:"criteria"`

	// Rows holds one entry per selected car, in selection order.
	Rows []ComparisonRow `json:"rows"`
}
