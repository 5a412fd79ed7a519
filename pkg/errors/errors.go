// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown               = "UNKNOWN_ERROR"
	CodeMalformedInstance     = "MALFORMED_INSTANCE"
	CodeUnknownNodeKind       = "UNKNOWN_NODE_KIND"
	CodeEmptyEligibleMachines = "EMPTY_ELIGIBLE_MACHINES"
	CodeMissingLowerBound     = "MISSING_LOWER_BOUND"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeConfigError           = "CONFIG_ERROR"
	CodeStorageError          = "STORAGE_ERROR"
	CodeDatabaseError         = "DATABASE_ERROR"
	CodeNotFound              = "NOT_FOUND"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrMalformedInstance     = New(CodeMalformedInstance, "malformed instance file")
	ErrUnknownNodeKind       = New(CodeUnknownNodeKind, "unknown expression node kind")
	ErrEmptyEligibleMachines = New(CodeEmptyEligibleMachines, "operation has no eligible machines")
	ErrMissingLowerBound     = New(CodeMissingLowerBound, "instance has no known lower bound")
	ErrInvalidInput          = New(CodeInvalidInput, "invalid input")
	ErrConfigError           = New(CodeConfigError, "configuration error")
	ErrStorageError          = New(CodeStorageError, "storage error")
	ErrDatabaseError         = New(CodeDatabaseError, "database error")
	ErrNotFound              = New(CodeNotFound, "resource not found")
)

// IsMalformedInstance checks if the error is a malformed-instance-file error.
func IsMalformedInstance(err error) bool {
	return errors.Is(err, ErrMalformedInstance)
}

// IsMissingLowerBound checks if the error is a missing-lower-bound error.
func IsMissingLowerBound(err error) bool {
	return errors.Is(err, ErrMissingLowerBound)
}

// IsEmptyEligibleMachines checks if the error is an empty-eligible-machines error.
func IsEmptyEligibleMachines(err error) bool {
	return errors.Is(err, ErrEmptyEligibleMachines)
}

// IsStorageError checks if the error is a storage error.
func IsStorageError(err error) bool {
	return errors.Is(err, ErrStorageError)
}

// IsDatabaseError checks if the error is a database error.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabaseError)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// ErrorInfo provides a lookup from short names to error codes, used by
// callers that only have a bare name (e.g. deserialized from a config
// file) and need the matching code.
var ErrorInfo = map[string]string{
	"MalformedInstance":     CodeMalformedInstance,
	"UnknownNodeKind":       CodeUnknownNodeKind,
	"EmptyEligibleMachines": CodeEmptyEligibleMachines,
	"MissingLowerBound":     CodeMissingLowerBound,
	"StorageError":          CodeStorageError,
	"DatabaseError":         CodeDatabaseError,
}
