package waitlist

import (
	"errors"

	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

// Sentinel errors for the waitlist domain. They are wrapped in an AppError so
// handlers can map them to a status code while callers can still use errors.Is.
var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrStoreUnavailable = errors.New("waitlist store unavailable")
	ErrEntryNotFound    = errors.New("waitlist entry not found")
	ErrInvalidStatus    = errors.New("invalid status transition")
)

func NewInvalidEmailError() error {
	return apperrors.NewInvalidRequestError("Please provide a valid email address", ErrInvalidEmail)
}

func NewDuplicateEmailError(cause error) error {
	if cause == nil {
		cause = ErrDuplicateEmail
	} else {
		cause = errors.Join(ErrDuplicateEmail, cause)
	}
	return apperrors.NewConflictError("Email already registered for waitlist", cause)
}

func NewStoreUnavailableError(message string, cause error) error {
	if cause == nil {
		cause = ErrStoreUnavailable
	} else {
		cause = errors.Join(ErrStoreUnavailable, cause)
	}
	return apperrors.NewDatabaseError(message, cause)
}

func NewEntryNotFoundError(cause error) error {
	if cause == nil {
		cause = ErrEntryNotFound
	} else {
		cause = errors.Join(ErrEntryNotFound, cause)
	}
	return apperrors.NewNotFoundError("waitlist entry not found", cause)
}

func NewInvalidStatusError(message string) error {
	return apperrors.NewInvalidRequestError(message, ErrInvalidStatus)
}
