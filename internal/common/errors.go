// Package common defines sentinel errors shared by the repository and manager
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrMultipleRows is returned when a single-row lookup matches more than one
	// live row. It signals a broken uniqueness invariant and is never a business
	// outcome.
	ErrMultipleRows = errors.New("multiple rows matched single-row lookup")

	// ErrConflict is returned when the store rejects a write because of a
	// uniqueness constraint.
	ErrConflict = errors.New("unique constraint violation")
)
