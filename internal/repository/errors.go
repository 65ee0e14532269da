package repository

import (
	"errors"
	"fmt"
)

// Common repository errors that can be checked with errors.Is()
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation is returned when a write would violate a
	// uniqueness or referential integrity constraint
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInvalidInput is returned when a record fails validation before
	// reaching storage
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable is returned when the underlying database
	// connection or transaction fails
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// storageFailure wraps a driver error so callers can match it with
// errors.Is(err, ErrStorageUnavailable) while keeping the cause in the chain.
func storageFailure(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrStorageUnavailable, err))
}
