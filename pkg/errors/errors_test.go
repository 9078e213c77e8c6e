package errors

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "test message: %s", "value")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_CONFIG: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStoreFailed, cause, "failed to write")

	if err.Code != ErrCodeStoreFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStoreFailed)
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
			err:      New(ErrCodeInvalidShape, "test"),
			code:     ErrCodeInvalidConfig,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeStoreFailed, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeStoreFailed,
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
			err:      New(ErrCodeInvalidShape, "test"),
			expected: ErrCodeInvalidShape,
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
			err:      New(ErrCodeInvalidConfig, "friendly message"),
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

func TestCodeSurvivesContextWrapping(t *testing.T) {
	shape := New(ErrCodeInvalidShape, "board %q: expected %d rows, found %d", "gate", 21, 20)
	wrapped := fmt.Errorf("load class paragon: %w", shape)

	if !Is(wrapped, ErrCodeInvalidShape) {
		t.Error("Is should see the code through fmt.Errorf wrapping")
	}
	if GetCode(wrapped) != ErrCodeInvalidShape {
		t.Errorf("GetCode() = %s, want %s", GetCode(wrapped), ErrCodeInvalidShape)
	}
	if got := UserMessage(wrapped); got != `board "gate": expected 21 rows, found 20` {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestStoreFailureKeepsCause(t *testing.T) {
	cause := os.ErrPermission
	err := Wrap(ErrCodeStoreFailed, cause, "write %s", "out/paragon.txt")

	if !errors.Is(err, os.ErrPermission) {
		t.Error("the cause should stay reachable with errors.Is")
	}
	if !strings.HasPrefix(err.Error(), "STORE_FAILED: write out/paragon.txt: ") {
		t.Errorf("Error() = %q", err.Error())
	}
}
