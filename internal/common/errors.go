// Package common defines shared sentinel errors used across the registry
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorValidation = errors.New("validation error")
	ErrorInternal   = errors.New("internal error")
)
