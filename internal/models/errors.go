package models

import (
	"errors"
	"fmt"
)

// Error constants for profile and verification operations
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrFavoriteExists   = errors.New("player already favorited")
	ErrEmailExists      = errors.New("email already registered")

	// ErrInvalidCode never says why a code failed, to avoid oracle attacks
	ErrInvalidCode = errors.New("invalid or expired code")

	ErrPhoneNumberMissing = errors.New("phone number required before code validation")
	ErrNoteRequired       = errors.New("a note is required when rejecting")
	ErrStateConflict      = errors.New("verification record changed concurrently")
)

// ValidationError signals missing or malformed input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RateLimitedError signals a cooldown that has not yet elapsed
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("please wait before requesting another code (retry after %ds)", e.RetryAfterSeconds)
}

// StateGuardError signals an operation attempted outside its allowed states
type StateGuardError struct {
	Operation string
	Status    VerificationStatus
}

func (e *StateGuardError) Error() string {
	return fmt.Sprintf("%s not allowed in status %q", e.Operation, e.Status)
}

// ProviderError wraps a downstream email/SMS provider failure. The wrapped
// error is for logging only; callers surface a generic message.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
