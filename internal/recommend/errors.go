// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import (
	"errors"
	"fmt"
)

// ErrSelectionTooSmall indicates a comparison was requested for fewer than
// two cars. A single-item "comparison" is a usage error, not a table.
var ErrSelectionTooSmall = errors.New("comparison requires at least 2 cars")

// SchemaError reports a malformed catalog input: a missing required column,
// an unparseable value, or an attribute outside its declared bounds.
// It is fatal; no recovery is attempted.
type SchemaError struct {
	// Column is the offending column or field name.
	Column string

	// Row is the 1-based data row, or 0 when the error is not row-specific.
	Row int

	// Reason describes what was wrong with the value.
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("catalog schema error: column %q row %d: %s", e.Column, e.Row, e.Reason)
	}
	return fmt.Sprintf("catalog schema error: column %q: %s", e.Column, e.Reason)
}

// InvalidProfileError reports a preference profile that violates its
// invariants, such as min budget above max budget or a negative weight.
// It is raised before filtering begins.
type InvalidProfileError struct {
	// Field is the offending profile field.
	Field string

	// Reason describes the violated constraint.
	Reason string
}

// Error implements the error interface.
func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s: %s", e.Field, e.Reason)
}

// EmptyResultError reports that hard-mode filtering excluded every car.
// It carries the relaxed (soft-mode) profile as a suggested recovery path;
// the decision to retry belongs to the caller, not the engine.
type EmptyResultError struct {
	// Profile is the profile that produced no candidates.
	Profile PreferenceProfile

	// Suggestion is the same profile with soft filtering enabled.
	Suggestion PreferenceProfile

	// CatalogSize is the number of cars that were considered.
	CatalogSize int
}

// Error implements the error interface.
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no car in the catalog (%d entries) satisfies every hard filter; retry with soft filtering or relax the constraints", e.CatalogSize)
}

// UnknownIdentifierError reports a comparison identifier that is not
// present in the scored set. Unknown identifiers are an error, never a
// silent skip.
type UnknownIdentifierError struct {
	// ID is the identifier that was not found.
	ID string
}

// Error implements the error interface.
func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown car identifier %q", e.ID)
}
