// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "message only",
			err:      NewNotFoundError("session not found"),
			expected: "session not found",
		},
		{
			name:     "message with wrapped error",
			err:      NewInternalError("failed to fetch artifact", errors.New("connection refused")),
			expected: "failed to fetch artifact: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("expected error message %q, got %q", tt.expected, tt.err.Error())
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{name: "validation", err: NewValidationError("bad input"), expected: ErrorTypeValidation},
		{name: "unauthorized", err: NewUnauthorizedError("invalid API key"), expected: ErrorTypeUnauthorized},
		{name: "not found", err: NewNotFoundError("missing"), expected: ErrorTypeNotFound},
		{name: "conflict", err: NewConflictError("already exists"), expected: ErrorTypeConflict},
		{name: "rate limited", err: NewRateLimitedError("slow down"), expected: ErrorTypeRateLimited},
		{name: "unavailable", err: NewUnavailableError("store down"), expected: ErrorTypeUnavailable},
		{name: "plain error falls back to internal", err: errors.New("boom"), expected: ErrorTypeInternal},
		{name: "wrapped domain error", err: fmt.Errorf("outer: %w", NewNotFoundError("inner")), expected: ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorType(tt.err); got != tt.expected {
				t.Errorf("expected error type %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "validation is not retryable", err: NewValidationError("empty input"), expected: false},
		{name: "unauthorized is not retryable", err: NewUnauthorizedError("invalid API key"), expected: false},
		{name: "not found is not retryable", err: NewNotFoundError("missing"), expected: false},
		{name: "conflict is not retryable", err: NewConflictError("modified"), expected: false},
		{name: "rate limited is retryable", err: NewRateLimitedError("slow down"), expected: true},
		{name: "internal is retryable", err: NewInternalError("boom"), expected: true},
		{name: "unavailable is retryable", err: NewUnavailableError("down"), expected: true},
		{name: "plain network error is retryable", err: errors.New("connection reset"), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.expected {
				t.Errorf("expected IsRetryable=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("underlying")
	err := NewInternalError("wrapper", inner)

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find underlying error")
	}
}
