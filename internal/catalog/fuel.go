// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package catalog

import (
	"strings"

	"github.com/tomtom215/motorgraph/internal/recommend"
)

// MatchFuel maps a fuel spelling to one of the engine's fuel categories,
// reporting whether the spelling was recognized. Manufacturer data is messy
// ("Deisel", "Petrol(Turbo)", "Plug-in Hybrid", "CNG + Petrol"), so matching
// is substring-based with a fixed precedence: CNG before petrol (dual fuel
// counts as CNG) and hybrid markers before electric (a "plug-in hybrid
// electric" is a hybrid). An unrecognized spelling returns false; callers
// validating user constraints must reject it rather than guess.
func MatchFuel(raw string) (recommend.FuelType, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "cng"):
		return recommend.FuelCNG, true
	case strings.Contains(s, "hybrid"), strings.Contains(s, "phev"),
		strings.Contains(s, "plug-in"), strings.Contains(s, "plug in"),
		strings.Contains(s, "mild"):
		return recommend.FuelHybrid, true
	case strings.Contains(s, "electric"), s == "ev", s == "bev",
		strings.Contains(s, "battery"):
		return recommend.FuelElectric, true
	case strings.Contains(s, "diesel"), strings.Contains(s, "deisel"):
		return recommend.FuelDiesel, true
	case strings.Contains(s, "petrol"), strings.Contains(s, "gasoline"),
		strings.Contains(s, "turbo"):
		return recommend.FuelPetrol, true
	default:
		return "", false
	}
}

// NormalizeFuel maps a raw manufacturer fuel string to a fuel category for
// catalog ingestion, where every row must land in some bucket: anything
// MatchFuel does not recognize (including the empty string) defaults to
// petrol, the dominant category in the source datasets.
func NormalizeFuel(raw string) recommend.FuelType {
	if ft, ok := MatchFuel(raw); ok {
		return ft
	}
	return recommend.FuelPetrol
}

// bodySynonyms maps common dataset spellings to the engine's body types.
var bodySynonyms = map[string]recommend.BodyType{
	"hatch":      recommend.BodyHatchback,
	"crossover":  recommend.BodySUV,
	"mpv":        recommend.BodyMUV,
	"minivan":    recommend.BodyMUV,
	"estate":     recommend.BodyWagon,
	"cabriolet":  recommend.BodyConvertible,
	"pick-up":    recommend.BodyPickup,
	"pickup van": recommend.BodyPickup,
}

// NormalizeBody maps a raw body-style string to one of the engine's body
// types. Returns false when the style is unrecognized.
func NormalizeBody(raw string) (recommend.BodyType, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if bt, ok := bodySynonyms[s]; ok {
		return bt, true
	}
	bt, err := recommend.ParseBodyType(s)
	if err != nil || bt == "" {
		return "", false
	}
	return bt, true
}
