// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

// Package validation provides struct validation using go-playground/validator
// v10. It exposes a thread-safe singleton validator with custom validators
// for the recommendation domain:
//
//   - fueltype:   empty or one of the engine's fuel categories
//   - bodytype:   empty or one of the engine's body styles
//   - filtermode: empty, "hard", or "soft"
//
// Example:
//
//	type recommendRequest struct {
//	    K    int    `validate:"min=0,max=100"`
//	    Fuel string `validate:"omitempty,fueltype"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    var ve *validation.RequestValidationError
//	    errors.As(err, &ve) // field-level details
//	}
package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/motorgraph/internal/recommend"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	// Field is the struct field that failed.
	Field string

	// Tag is the validation tag that failed.
	Tag string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return e.Message
}

// RequestValidationError is a collection of field validation failures.
type RequestValidationError struct {
	fields []FieldError
}

// Fields returns the individual field errors.
func (ve *RequestValidationError) Fields() []FieldError {
	return ve.fields
}

// Error implements the error interface, joining all field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.fields))
	for i, fe := range ve.fields {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// getValidator returns the singleton validator, creating it on first use.
// The validator caches struct metadata, so sharing one instance is both
// safe and faster.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Domain validators. Registration only fails for empty tags, so
		// errors here are programmer mistakes and safe to ignore.
		_ = validate.RegisterValidation("fueltype", func(fl validator.FieldLevel) bool {
			_, err := recommend.ParseFuelType(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("bodytype", func(fl validator.FieldLevel) bool {
			_, err := recommend.ParseBodyType(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("filtermode", func(fl validator.FieldLevel) bool {
			_, err := recommend.ParseFilterMode(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// ValidateStruct validates a struct using its `validate` tags. Returns nil
// on success or a *RequestValidationError with one entry per failed field.
func ValidateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError: the input was not a struct at all.
		return fmt.Errorf("validation: %w", err)
	}

	ve := &RequestValidationError{}
	for _, fe := range invalid {
		ve.fields = append(ve.fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: friendlyMessage(fe),
		})
	}
	return ve
}

// friendlyMessage builds a readable message for one failed field.
func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "fueltype":
		return fmt.Sprintf("%s must be one of: petrol, diesel, electric, hybrid, cng", fe.Field())
	case "bodytype":
		return fmt.Sprintf("%s is not a recognized body style", fe.Field())
	case "filtermode":
		return fmt.Sprintf("%s must be hard or soft", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
