// Package common defines shared constants and sentinel errors used across
// client and server layers of ProgressPilot. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (empty required field, unknown status value).
	ErrorValidation = errors.New("validation error")

	// Registration with an email that is already taken.
	ErrorConflict = errors.New("already exists")

	// Project cap reached for the owner.
	ErrorLimitExceeded = errors.New("limit exceeded")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
