package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			err:      New(CodeMalformedInstance, "bad header on line 1"),
			expected: "[MALFORMED_INSTANCE] bad header on line 1",
		},
		{
			name:     "with underlying error",
			err:      Wrap(CodeStorageError, "fetch failed", errors.New("network timeout")),
			expected: "[STORAGE_ERROR] fetch failed: network timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Wrap(CodeDatabaseError, "write failed", underlying)

	unwrapped := err.Unwrap()
	assert.Equal(t, underlying, unwrapped)
}

func TestAppError_Is(t *testing.T) {
	err1 := New(CodeMalformedInstance, "error 1")
	err2 := New(CodeMalformedInstance, "error 2")
	err3 := New(CodeMissingLowerBound, "error 3")

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestIsMalformedInstance(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "malformed instance error",
			err:      ErrMalformedInstance,
			expected: true,
		},
		{
			name:     "wrapped malformed instance error",
			err:      Wrap(CodeMalformedInstance, "bad file", errors.New("unexpected EOF")),
			expected: true,
		},
		{
			name:     "other error",
			err:      ErrMissingLowerBound,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMalformedInstance(tt.err))
		})
	}
}

func TestIsMissingLowerBound(t *testing.T) {
	assert.True(t, IsMissingLowerBound(ErrMissingLowerBound))
	assert.False(t, IsMissingLowerBound(ErrMalformedInstance))
}

func TestIsEmptyEligibleMachines(t *testing.T) {
	assert.True(t, IsEmptyEligibleMachines(ErrEmptyEligibleMachines))
	assert.False(t, IsEmptyEligibleMachines(ErrMalformedInstance))
}

func TestIsStorageError(t *testing.T) {
	assert.True(t, IsStorageError(ErrStorageError))
	assert.False(t, IsStorageError(ErrDatabaseError))
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeMalformedInstance, "bad file"),
			expected: CodeMalformedInstance,
		},
		{
			name:     "wrapped app error",
			err:      Wrap(CodeStorageError, "fetch", errors.New("inner")),
			expected: CodeStorageError,
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: CodeUnknown,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: CodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCode(tt.err))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "app error",
			err:      New(CodeMalformedInstance, "bad header"),
			expected: "bad header",
		},
		{
			name:     "standard error",
			err:      errors.New("standard error"),
			expected: "standard error",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorMessage(tt.err))
		})
	}
}

func TestErrorInfo(t *testing.T) {
	assert.Equal(t, CodeMalformedInstance, ErrorInfo["MalformedInstance"])
	assert.Equal(t, CodeUnknownNodeKind, ErrorInfo["UnknownNodeKind"])
	assert.Equal(t, CodeEmptyEligibleMachines, ErrorInfo["EmptyEligibleMachines"])
	assert.Equal(t, CodeMissingLowerBound, ErrorInfo["MissingLowerBound"])
}
