package generate

import (
	"fmt"
)

// Error codes reported to callers of the engine.
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeUnsupportedContent = "UNSUPPORTED_CONTENT"
	ErrCodeSelectFailed       = "SELECT_FAILED"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string, cause error) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
		Cause:   cause,
	}
}

func errUnsupported(message string) error {
	return &CodedError{
		Code:    ErrCodeUnsupportedContent,
		Message: message,
	}
}

func errSelect(expression string, cause error) error {
	return &CodedError{
		Code:    ErrCodeSelectFailed,
		Message: fmt.Sprintf("select %q", expression),
		Cause:   cause,
	}
}
