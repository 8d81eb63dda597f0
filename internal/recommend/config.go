// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import "fmt"

// Config contains the engine's tuning parameters. Weights are per-request
// and live on the PreferenceProfile; Config holds the fixed policy knobs.
type Config struct {
	// SoftPenalty is the deduction applied per mismatched soft criterion
	// (seating, fuel type, body type) after the weighted sum. The final
	// score is clamped at 0.
	SoftPenalty float64 `json:"soft_penalty" koanf:"soft_penalty"`

	// BudgetTolerance is the fractional headroom allowed above the max
	// budget in soft mode. 0.10 means a car up to 10% over budget is
	// still eligible; beyond that it is excluded even in soft mode.
	BudgetTolerance float64 `json:"budget_tolerance" koanf:"budget_tolerance"`

	// DefaultK is the number of cars returned when a request does not
	// specify K.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK caps the number of cars a single request may ask for.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// DefaultConfig returns the engine defaults: a 0.10 deduction per
// mismatched soft criterion and a 10% soft-mode budget ceiling.
func DefaultConfig() *Config {
	return &Config{
		SoftPenalty:     0.10,
		BudgetTolerance: 0.10,
		DefaultK:        20,
		MaxK:            100,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SoftPenalty < 0 || c.SoftPenalty > 1 {
		return fmt.Errorf("soft_penalty must be in [0, 1], got %v", c.SoftPenalty)
	}
	if c.BudgetTolerance < 0 || c.BudgetTolerance > 1 {
		return fmt.Errorf("budget_tolerance must be in [0, 1], got %v", c.BudgetTolerance)
	}
	if c.DefaultK <= 0 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k (%d) must be at least default_k (%d)", c.MaxK, c.DefaultK)
	}
	return nil
}
