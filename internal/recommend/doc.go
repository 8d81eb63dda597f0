// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

// Package recommend implements the car recommendation engine.
//
// # Architecture
//
// The engine runs a fixed pipeline over an immutable Catalog:
//
//	Catalog + PreferenceProfile -> Filter -> Score -> Rank -> (Compare)
//
// Filtering reduces the catalog to a candidate set using the profile's
// primary filters (budget, seating, fuel type, body type) in either HARD
// mode (strict exclusion) or SOFT mode (mismatches become score penalties,
// only the budget ceiling is enforced, with a small tolerance). Scoring
// computes a normalized weighted sum over six criteria; ranking applies a
// deterministic total order; comparison produces a side-by-side breakdown
// for a user-chosen subset in the user's order.
//
// # Design Principles
//
//   - Deterministic: identical inputs produce bit-identical output
//     (fixed criterion iteration order, no randomness)
//   - Pure: no side effects beyond structured logging; all request state
//     is local to a call
//   - Auditable: every scored car carries its per-criterion contribution
//     breakdown
//
// # Usage
//
//	cat, err := recommend.NewCatalog(records)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//
//	resp, err := engine.Recommend(ctx, cat, recommend.Request{
//	    Profile: profile,
//	    K:       20,
//	})
//
// # Thread Safety
//
// The engine holds no mutable state and is safe for concurrent use as long
// as the Catalog is never mutated after construction, which NewCatalog
// guarantees by copying its input.
//
// This package has no dependencies on other internal packages; catalog
// ingestion lives in internal/catalog and the HTTP surface in internal/api.
package recommend
