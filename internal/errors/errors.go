package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	CodeFormatError     = "FORMAT_ERROR"
	CodeDataSourceError = "DATA_SOURCE_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
)

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if the chain holds an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Format reports malformed input such as a bad super group label or persisted state
func Format(message string, cause error) *AppError {
	return &AppError{Code: CodeFormatError, Message: message, Cause: cause}
}

// DataSource reports a failed or malformed collector call
func DataSource(message string, cause error) *AppError {
	return &AppError{Code: CodeDataSourceError, Message: message, Cause: cause}
}

// Validation reports user input that cannot produce a graph
func Validation(message string) *AppError {
	return New(CodeValidationError, message)
}

func IsFormat(err error) bool {
	return GetCode(err) == CodeFormatError
}

func IsDataSource(err error) bool {
	return GetCode(err) == CodeDataSourceError
}

func IsValidation(err error) bool {
	return GetCode(err) == CodeValidationError
}
