// Package common defines shared constants, helpers and sentinel errors used
// across the server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrInvalidToken covers every token failure: malformed, tampered, wrong
	// algorithm, unknown role or expired.
	ErrInvalidToken = errors.New("invalid token")
)
