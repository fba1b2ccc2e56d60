package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy. One bad file never aborts a batch: the batch driver logs
// the kind and moves on. Single-file CLIs map each kind to its own exit
// status so scripted callers can tell dependency problems from data problems.
var (
	// ErrDependency: no usable OCR engine (missing binary or language pack).
	ErrDependency = errors.New("dependency missing")
	// ErrAcquisition: the OCR collaborator could not produce text
	// (unreadable file, unsupported format, engine failure).
	ErrAcquisition = errors.New("text acquisition failed")
	// ErrValidation: input text is empty, or no page yielded any key field.
	ErrValidation = errors.New("validation failed")
	// ErrParsing: unexpected internal error during pattern extraction.
	// Patterns are total functions over strings, so this is rare.
	ErrParsing = errors.New("parsing failed")
)

// Exit statuses for the single-file CLI entry points.
const (
	ExitFailure     = 1
	ExitDependency  = 2
	ExitAcquisition = 3
	ExitValidation  = 4
	ExitParsing     = 5
)

// ExitCode maps an error to its process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrDependency):
		return ExitDependency
	case errors.Is(err, ErrAcquisition):
		return ExitAcquisition
	case errors.Is(err, ErrValidation):
		return ExitValidation
	case errors.Is(err, ErrParsing):
		return ExitParsing
	default:
		return ExitFailure
	}
}

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
