package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformedInput, "test message: %s", "value")

	if err.Code != ErrCodeMalformedInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "MALFORMED_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeIO, cause, "failed to write")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeIO,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeIO, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeIO,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDegenerateScale, "test"),
			expected: ErrCodeDegenerateScale,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	skip := Sentinel(ErrCodeEmptyContent)

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"same sentinel", skip, true},
		{"fresh error same code", New(ErrCodeEmptyContent, "no opaque pixels"), true},
		{"wrapped by fmt", fmt.Errorf("crop: %w", New(ErrCodeEmptyContent, "x")), true},
		{"other code", New(ErrCodeDegenerateScale, "x"), false},
		{"plain error", errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, skip); got != tt.expected {
				t.Errorf("errors.Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsWalksCauses(t *testing.T) {
	inner := New(ErrCodeDegenerateScale, "ratio too small")
	err := Wrap(ErrCodeIO, inner, "export")

	if !Is(err, ErrCodeIO) {
		t.Error("Is(err, outer code) = false, want true")
	}
	if !Is(err, ErrCodeDegenerateScale) {
		t.Error("Is(err, inner code) = false, want true")
	}
	if GetCode(err) != ErrCodeIO {
		t.Errorf("GetCode() = %v, want %v", GetCode(err), ErrCodeIO)
	}
}
