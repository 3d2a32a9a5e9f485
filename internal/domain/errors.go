package domain

import "errors"

var (
	// ErrNotFound indicates an unknown jacket identifier or load case.
	// Lookups never fall back to a default target set.
	ErrNotFound = errors.New("jacket or case not found")

	// ErrValidation indicates a reading that violates the input contract:
	// a missing leg, an unexpected leg, or a negative pressure.
	ErrValidation = errors.New("invalid reading")

	// ErrStorage indicates an I/O failure in the pressure register.
	// Storage adapters wrap their underlying errors with this sentinel so
	// callers can branch with errors.Is.
	ErrStorage = errors.New("register storage failure")
)
