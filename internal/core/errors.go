package core

import (
	"errors"
	"fmt"

	"ecopontos-backend-go/internal/db"
)

var (
	ErrCollectionPointNotFound = errors.New("collection point not found")
	ErrSuggestionNotFound      = errors.New("suggestion not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrNoRatings               = errors.New("no ratings found")

	// ErrSuggestionAlreadyResolved is returned when approving or rejecting a suggestion
	// that is no longer pending.
	ErrSuggestionAlreadyResolved = errors.New("suggestion already resolved")
	ErrEmailAlreadyExists        = errors.New("email already registered")

	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrInvalidID        = errors.New("invalid identifier")
)

// translate maps repository errors onto service errors. notFound is the sentinel used
// when the repository reports db.ErrNotFound.
func translate(err error, notFound error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("%w: %s", notFound, msg)
	case errors.Is(err, db.ErrInvalidKey):
		return fmt.Errorf("%w: %s: %v", ErrInvalidID, msg, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
