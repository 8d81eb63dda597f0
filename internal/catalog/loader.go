// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver
	"github.com/rs/zerolog"

	"github.com/tomtom215/motorgraph/internal/recommend"
)

// requiredColumns lists the CSV columns every dataset must provide.
var requiredColumns = []string{
	"id", "make", "model", "price", "seating", "fuel_type", "body_type",
	"performance", "economy", "safety", "comfort", "ownership_cost",
}

// Loader reads car datasets into catalogs.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a catalog loader.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Load ingests the CSV at path and returns the validated catalog. It fails
// fast with a *recommend.SchemaError on a missing required column, an
// unparseable value, or an out-of-bounds attribute.
func (l *Loader) Load(ctx context.Context, path string) (*recommend.Catalog, error) {
	// Disable auto-install/auto-load to prevent hangs in restricted
	// network environments; read_csv needs no extensions.
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer conn.Close()

	if err := l.checkColumns(ctx, conn, path); err != nil {
		return nil, err
	}

	records, err := l.readRecords(ctx, conn, path)
	if err != nil {
		return nil, err
	}

	cat, err := recommend.NewCatalog(records)
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("path", path).
		Int("cars", cat.Len()).
		Msg("catalog loaded")

	return cat, nil
}

// checkColumns verifies every required column exists in the CSV header.
func (l *Loader) checkColumns(ctx context.Context, conn *sql.DB, path string) error {
	rows, err := conn.QueryContext(ctx,
		"SELECT * FROM read_csv(?, header = true, all_varchar = true) LIMIT 0", path)
	if err != nil {
		return fmt.Errorf("read csv header %q: %w", path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("inspect csv header: %w", err)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}

	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[strings.ToLower(strings.TrimSpace(col))] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return &recommend.SchemaError{Column: col, Reason: "required column is missing"}
		}
	}
	return nil
}

// readRecords projects the required columns and parses each row.
func (l *Loader) readRecords(ctx context.Context, conn *sql.DB, path string) ([]recommend.CarRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM read_csv(?, header = true, all_varchar = true)",
		strings.Join(requiredColumns, ", "))
	rows, err := conn.QueryContext(ctx, query, path)
	if err != nil {
		return nil, fmt.Errorf("read csv %q: %w", path, err)
	}
	defer rows.Close()

	var records []recommend.CarRecord
	row := 0
	for rows.Next() {
		row++
		var (
			id, mk, model, price, seating, fuel, body sql.NullString
			perf, eco, safety, comfort, ownership     sql.NullString
		)
		if err := rows.Scan(&id, &mk, &model, &price, &seating, &fuel, &body,
			&perf, &eco, &safety, &comfort, &ownership); err != nil {
			return nil, fmt.Errorf("scan csv row %d: %w", row, err)
		}

		rec, err := parseRecord(row, rowValues{
			id: id.String, mk: mk.String, model: model.String,
			price: price.String, seating: seating.String,
			fuel: fuel.String, body: body.String,
			perf: perf.String, eco: eco.String, safety: safety.String,
			comfort: comfort.String, ownership: ownership.String,
		})
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read csv rows: %w", err)
	}

	return records, nil
}

// rowValues carries one raw CSV row.
type rowValues struct {
	id, mk, model, price, seating, fuel, body string
	perf, eco, safety, comfort, ownership     string
}

// parseRecord converts one raw row into a CarRecord.
func parseRecord(row int, v rowValues) (recommend.CarRecord, error) {
	var rec recommend.CarRecord

	rec.ID = strings.TrimSpace(v.id)
	rec.Make = strings.TrimSpace(v.mk)
	rec.Model = strings.TrimSpace(v.model)

	price, err := ParseMoney(v.price)
	if err != nil {
		return rec, &recommend.SchemaError{Column: "price", Row: row, Reason: err.Error()}
	}
	rec.Price = int64(price)

	seating, err := strconv.Atoi(strings.TrimSpace(v.seating))
	if err != nil {
		return rec, &recommend.SchemaError{Column: "seating", Row: row, Reason: fmt.Sprintf("cannot parse %q", v.seating)}
	}
	rec.Seating = seating

	rec.Fuel = NormalizeFuel(v.fuel)

	body, ok := NormalizeBody(v.body)
	if !ok {
		return rec, &recommend.SchemaError{Column: "body_type", Row: row, Reason: fmt.Sprintf("unknown body style %q", v.body)}
	}
	rec.Body = body

	for _, attr := range []struct {
		col string
		raw string
		dst *float64
	}{
		{"performance", v.perf, &rec.Performance},
		{"economy", v.eco, &rec.Economy},
		{"safety", v.safety, &rec.Safety},
		{"comfort", v.comfort, &rec.Comfort},
		{"ownership_cost", v.ownership, &rec.OwnershipCost},
	} {
		f, err := strconv.ParseFloat(strings.TrimSpace(attr.raw), 64)
		if err != nil {
			return rec, &recommend.SchemaError{Column: attr.col, Row: row, Reason: fmt.Sprintf("cannot parse %q", attr.raw)}
		}
		*attr.dst = f
	}

	return rec, nil
}
