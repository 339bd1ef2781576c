package dberrors

import "errors"

// Sentinel errors surfaced by the repository and session layers
var (
	// ErrNotFound indicates that no row matched when one was expected
	ErrNotFound = errors.New("no record found when one was expected")

	// ErrMultipleResults indicates that more than one row matched when a
	// single row was expected
	ErrMultipleResults = errors.New("multiple records found when one was expected")

	// ErrDuplicateKey indicates a unique constraint violation
	ErrDuplicateKey = errors.New("record violates a unique constraint")

	// ErrForeignKey indicates a foreign key constraint violation
	ErrForeignKey = errors.New("record violates a foreign key constraint")

	// ErrCheckConstraint indicates a check constraint violation
	ErrCheckConstraint = errors.New("record violates a check constraint")

	// ErrIntegrity indicates an integrity violation that is not attributable
	// to a specific constraint kind
	ErrIntegrity = errors.New("record violates database integrity")

	// ErrInvalidRequest indicates a statement the database cannot execute as
	// written, such as an update without a where clause
	ErrInvalidRequest = errors.New("invalid database request")

	// ErrImproperConfiguration indicates the library was wired up in a way
	// that cannot work, such as duplicate context keys across bindings
	ErrImproperConfiguration = errors.New("improper configuration")
)
