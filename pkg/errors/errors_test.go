package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingVersion, "%s doesn't have version", "serde")

	if err.Code != ErrCodeMissingVersion {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingVersion)
	}

	if err.Message != "serde doesn't have version" {
		t.Errorf("Message = %v, want %v", err.Message, "serde doesn't have version")
	}

	expected := "MISSING_VERSION: serde doesn't have version"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 101")
	err := Wrap(ErrCodeResolution, cause, "cargo metadata failed")

	if err.Code != ErrCodeResolution {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeResolution)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "RESOLUTION_FAILED: cargo metadata failed: exit status 101"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeMissingURL, "test"),
			code:     ErrCodeMissingURL,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMissingURL, "test"),
			code:     ErrCodeResolution,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeResolution, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeResolution,
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
		{"Error type", New(ErrCodeUnsupportedKind, "test"), ErrCodeUnsupportedKind},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsClassificationMiss(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing kind", New(ErrCodeMissingKind, "x"), true},
		{"missing url", New(ErrCodeMissingURL, "x"), true},
		{"missing name", New(ErrCodeMissingName, "x"), true},
		{"missing version", New(ErrCodeMissingVersion, "x"), true},
		{"missing reference", New(ErrCodeMissingReference, "x"), true},
		{"unsupported kind", New(ErrCodeUnsupportedKind, "x"), true},
		{"unrecognized", New(ErrCodeUnrecognized, "x"), true},
		{"resolution is fatal", New(ErrCodeResolution, "x"), false},
		{"manifest is fatal", New(ErrCodeInvalidManifest, "x"), false},
		{"plain error", errors.New("x"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClassificationMiss(tt.err); got != tt.want {
				t.Errorf("IsClassificationMiss() = %v, want %v", got, tt.want)
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
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
