// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for boundary failures
var (
	ErrNotConnected     = errors.New("switch not connected")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrMissingField     = errors.New("required field missing")
	ErrStackNotFound    = errors.New("stack session not found")
	ErrUnitConflict     = errors.New("stack unit conflict")
	ErrValidationFailed = errors.New("validation failed")
)

// MissingFieldError reports a required option that was not supplied.
// Security-relevant fields (passwords, management addresses) are never
// silently defaulted; callers get this error instead.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// NewMissingFieldError creates a missing-field error
func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// UnitConflictError reports two stack units producing colliding state,
// e.g. duplicate unit numbers or colliding translated interface names.
type UnitConflictError struct {
	UnitA   int
	UnitB   int
	Subject string
}

func (e *UnitConflictError) Error() string {
	return fmt.Sprintf("units %d and %d conflict on %s", e.UnitA, e.UnitB, e.Subject)
}

func (e *UnitConflictError) Unwrap() error {
	return ErrUnitConflict
}

// ConnectError reports a failed connection attempt with per-method detail,
// so the user can diagnose without re-running.
type ConnectError struct {
	Host        string
	SSHError    error
	TelnetError error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connection to %s failed - SSH: %v, Telnet: %v", e.Host, e.SSHError, e.TelnetError)
}

func (e *ConnectError) Unwrap() error {
	return ErrNotConnected
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
