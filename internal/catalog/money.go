// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Money is an INR amount in whole rupees. It unmarshals from either a JSON
// number or a shorthand string ("12.5L", "1.2cr", "800k", "₹9,50,000"), so
// API clients can send budgets the way Indian listings write them.
type Money int64

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	// Plain number first.
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*m = Money(math.Round(n))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("money must be a number or a string, got %s", data)
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalJSON implements json.Marshaler, emitting the plain rupee amount.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(m), 10)), nil
}

// ParseMoney parses an INR amount from a string. Supported forms:
//
//	"950000"          plain rupees
//	"12.5L", "12 lakh" lakhs (1e5)
//	"1.2cr", "2 crore" crores (1e7)
//	"800k"            thousands
//	"₹9,50,000"       currency symbol and digit grouping are ignored
//
// A bare number below 1000 is read as lakhs, matching how Indian car
// budgets are quoted colloquially ("my budget is 12").
func ParseMoney(raw string) (Money, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty money value")
	}

	multiplier := 1.0
	switch {
	case strings.Contains(s, "crore"), strings.HasSuffix(s, "cr"):
		multiplier = 1e7
		s = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(s, "crores"), "crore"), "cr")
	case strings.Contains(s, "lakh"), strings.HasSuffix(s, "l"):
		multiplier = 1e5
		s = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(s, "lakhs"), "lakh"), "l")
	case strings.HasSuffix(s, "k"):
		multiplier = 1e3
		s = strings.TrimSuffix(s, "k")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse money value %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("money value %q is negative", raw)
	}

	// Colloquial bare lakh figure.
	if multiplier == 1 && v < 1000 {
		multiplier = 1e5
	}

	return Money(math.Round(v * multiplier)), nil
}

// FormatMoney renders an INR amount in readable Cr / L notation.
func FormatMoney(inr int64) string {
	switch {
	case inr >= 1e7:
		return fmt.Sprintf("₹%.2f Cr", float64(inr)/1e7)
	case inr >= 1e5:
		return fmt.Sprintf("₹%.1f L", float64(inr)/1e5)
	default:
		return fmt.Sprintf("₹%d", inr)
	}
}
