package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("code", "code is required")
	assert.Equal(t, "code: code is required", err.Error())

	bare := &ValidationError{Message: "bad input"}
	assert.Equal(t, "bad input", bare.Error())

	var target *ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, "code", target.Field)
}

func TestRateLimitedError(t *testing.T) {
	err := &RateLimitedError{RetryAfterSeconds: 40}
	assert.Contains(t, err.Error(), "40s")
}

func TestStateGuardError(t *testing.T) {
	err := &StateGuardError{Operation: "submit stats", Status: StatusVerified}
	assert.Contains(t, err.Error(), "submit stats")
	assert.Contains(t, err.Error(), "verified")
}

func TestProviderError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &ProviderError{Provider: "sms", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "sms")
}

func TestInvalidCodeMessageIsGeneric(t *testing.T) {
	// The message never distinguishes wrong from expired
	assert.Equal(t, "invalid or expired code", ErrInvalidCode.Error())
}
