package common

import (
	"errors"
	"fmt"
)

// Callers should match these values with errors.Is.
var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorStoreUnavailable = errors.New("store unavailable")

	// Entity-specific not-found errors. Each one also matches ErrorNotFound.
	ErrorUserNotFound        = fmt.Errorf("user %w", ErrorNotFound)
	ErrorCaregiverNotFound   = fmt.Errorf("caregiver %w", ErrorNotFound)
	ErrorMeasurementNotFound = fmt.Errorf("measurement %w", ErrorNotFound)
	ErrorMessageNotFound     = fmt.Errorf("message %w", ErrorNotFound)

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorDuplicateEmail  = errors.New("email already registered")
	ErrorNotACaregiver   = errors.New("user is not a caregiver")
	ErrorAlreadyAssigned = errors.New("caregiver already assigned")

	// Validation errors.
	ErrorBadBirthDate = errors.New("bad birth date format")
	ErrorBadTimestamp = errors.New("bad date_time format")
	ErrorInvalidKind  = errors.New("wrong measurement kind")
	ErrorMissingField = errors.New("input parameter missing")
	ErrorOutOfRange   = errors.New("input parameter out of range")

	// Auth errors.
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrForbidden    = errors.New("caller is not allowed")
)
