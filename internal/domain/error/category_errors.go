// Package error defines domain-specific errors for the RealtyTrack application.
package error

import "errors"

// Category registry errors.
var (
	// ErrInvalidCategoryRegistry is returned when a registry file cannot be used.
	ErrInvalidCategoryRegistry = errors.New("invalid category registry")
)
