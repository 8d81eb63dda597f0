// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

// Package catalog ingests the car dataset into an immutable
// recommend.Catalog.
//
// The dataset is a CSV file with one car per row. Ingestion goes through an
// in-memory DuckDB connection (read_csv with all columns as varchar) so the
// loader controls all parsing itself: prices accept Indian money shorthand
// ("12.5L", "1.2cr", "800k") alongside plain numerics, and raw manufacturer
// fuel strings are normalized into the engine's five fuel categories.
//
// Loading is fail-fast: a missing required column, an unparseable value, or
// an out-of-bounds attribute aborts with a *recommend.SchemaError naming
// the column and row. The catalog is built once at startup and is read-only
// thereafter.
package catalog
