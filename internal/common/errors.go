// Package common defines shared constants and sentinel errors used across
// the server and client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrorDuplicateKey = errors.New("duplicate key")

	// Service-level errors.
	ErrorConflict   = errors.New("email or phone already exists")
	ErrorValidation = errors.New("validation error")
	ErrorInternal   = errors.New("internal error")

	// Storage failures surfaced to callers as 5xx.
	ErrorStorage = errors.New("storage error")
	ErrorIO      = errors.New("asset io error")
)
