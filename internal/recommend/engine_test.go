// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewEngineValidatesConfig(t *testing.T) {
	if _, err := NewEngine(&Config{SoftPenalty: -1}, zerolog.Nop()); err == nil {
		t.Error("NewEngine() accepted a negative soft penalty")
	}

	engine, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine(nil) error = %v", err)
	}
	if engine.Config().SoftPenalty != DefaultConfig().SoftPenalty {
		t.Error("NewEngine(nil) did not apply defaults")
	}
}

// Two cars, safety-only weights: the safer car wins despite its higher price.
func TestRecommendSafetyScenario(t *testing.T) {
	recs := []CarRecord{
		{ID: "A", Price: 20000, Seating: 5, Fuel: FuelPetrol, Body: BodySedan, Safety: 9, Economy: 6},
		{ID: "B", Price: 18000, Seating: 5, Fuel: FuelPetrol, Body: BodySedan, Safety: 7, Economy: 8},
	}
	cat, err := NewCatalog(recs)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	engine := newTestEngine(t)
	resp, err := engine.Recommend(context.Background(), cat, Request{
		Profile: PreferenceProfile{
			Budget:  BudgetRange{Min: 15000, Max: 22000},
			Mode:    FilterHard,
			Weights: Weights{Safety: 1},
		},
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := idsOf(resp.Cars); !equalIDs(got, []string{"A", "B"}) {
		t.Errorf("ranked order = %v, want [A B]", got)
	}
}

func TestRecommendHardModeEmptyCatalogResult(t *testing.T) {
	cat := newTestCatalog(t)
	engine := newTestEngine(t)

	_, err := engine.Recommend(context.Background(), cat, Request{
		Profile: PreferenceProfile{
			Budget: BudgetRange{Min: 0, Max: 10000},
			Mode:   FilterHard,
		},
	})

	var emptyErr *EmptyResultError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("Recommend() error = %v, want *EmptyResultError", err)
	}

	// The suggested recovery must succeed when the caller chooses to retry.
	resp, err := engine.Recommend(context.Background(), cat, Request{Profile: emptyErr.Suggestion})
	if err != nil {
		t.Fatalf("Recommend() with suggested soft profile error = %v", err)
	}
	if resp.Metadata.Mode != "soft" {
		t.Errorf("retry mode = %q, want soft", resp.Metadata.Mode)
	}
}

func TestRecommendRejectsInvalidProfile(t *testing.T) {
	cat := newTestCatalog(t)
	engine := newTestEngine(t)

	_, err := engine.Recommend(context.Background(), cat, Request{
		Profile: PreferenceProfile{Budget: BudgetRange{Min: 20, Max: 10}},
	})

	var profErr *InvalidProfileError
	if !errors.As(err, &profErr) {
		t.Fatalf("Recommend() error = %v, want *InvalidProfileError", err)
	}
}

// Identical catalog and profile produce bit-identical ordered output.
func TestRecommendIdempotent(t *testing.T) {
	cat := newTestCatalog(t)
	engine := newTestEngine(t)
	req := Request{
		Profile: PreferenceProfile{
			Budget:  anyBudget(),
			Fuel:    FuelPetrol,
			Mode:    FilterSoft,
			Weights: Weights{Performance: 1.3, Safety: 2.1, PriceSensitivity: 0.7},
		},
	}

	first, err := engine.Recommend(context.Background(), cat, req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	second, err := engine.Recommend(context.Background(), cat, req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !equalIDs(idsOf(first.Cars), idsOf(second.Cars)) {
		t.Fatalf("orders differ: %v vs %v", idsOf(first.Cars), idsOf(second.Cars))
	}
	for i := range first.Cars {
		if first.Cars[i].Score != second.Cars[i].Score {
			t.Errorf("%s: scores differ across calls", first.Cars[i].Car.ID)
		}
	}
}

func TestRecommendKLimits(t *testing.T) {
	cat := newTestCatalog(t)
	engine := newTestEngine(t)
	profile := PreferenceProfile{Budget: anyBudget(), Mode: FilterHard}

	tests := []struct {
		name string
		k    int
		want int
	}{
		{name: "explicit k", k: 2, want: 2},
		{name: "zero k uses default", k: 0, want: cat.Len()}, // default 20 > fixture size
		{name: "k above cap is clamped", k: 100000, want: cat.Len()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := engine.Recommend(context.Background(), cat, Request{Profile: profile, K: tt.k})
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if len(resp.Cars) != tt.want {
				t.Errorf("returned %d cars, want %d", len(resp.Cars), tt.want)
			}
			if resp.Metadata.Returned != len(resp.Cars) {
				t.Errorf("metadata returned = %d, want %d", resp.Metadata.Returned, len(resp.Cars))
			}
		})
	}
}

func TestRecommendMetadata(t *testing.T) {
	cat := newTestCatalog(t)
	engine := newTestEngine(t)

	resp, err := engine.Recommend(context.Background(), cat, Request{
		Profile:   PreferenceProfile{Budget: anyBudget(), Mode: FilterHard},
		RequestID: "req-123",
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	md := resp.Metadata
	if md.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want req-123", md.RequestID)
	}
	if md.CatalogSize != cat.Len() {
		t.Errorf("CatalogSize = %d, want %d", md.CatalogSize, cat.Len())
	}
	if md.CandidateCount != cat.Len() {
		t.Errorf("CandidateCount = %d, want %d", md.CandidateCount, cat.Len())
	}
	if md.Mode != "hard" {
		t.Errorf("Mode = %q, want hard", md.Mode)
	}
	if md.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}
}

func TestRecommendCancelledContext(t *testing.T) {
	cat := newTestCatalog(t)
	engine := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Recommend(ctx, cat, Request{Profile: PreferenceProfile{Budget: anyBudget()}}); !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func TestEngineCompare(t *testing.T) {
	cat := newTestCatalog(t)
	engine := newTestEngine(t)
	profile := PreferenceProfile{Budget: anyBudget(), Mode: FilterSoft, Weights: Weights{Safety: 1}}

	table, err := engine.Compare(context.Background(), cat, profile, []string{"creta", "city"})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if table.Rows[0].Car.ID != "creta" || table.Rows[1].Car.ID != "city" {
		t.Errorf("comparison order = %v, want [creta city]", []string{table.Rows[0].Car.ID, table.Rows[1].Car.ID})
	}

	// A car excluded by hard filtering is unknown to the scored set.
	hardProfile := PreferenceProfile{Budget: BudgetRange{Max: 1000000}, Mode: FilterHard}
	_, err = engine.Compare(context.Background(), cat, hardProfile, []string{"alto", "innova"})
	var unknownErr *UnknownIdentifierError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Compare() error = %v, want *UnknownIdentifierError", err)
	}

	if _, err := engine.Compare(context.Background(), cat, profile, []string{"alto"}); !errors.Is(err, ErrSelectionTooSmall) {
		t.Errorf("Compare() single id error = %v, want ErrSelectionTooSmall", err)
	}
}
