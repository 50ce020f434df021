package tools

import (
	"errors"
	"log/slog"

	"github.com/usestring/json2ts/internal/generate"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = generate.ErrCodeInvalidInput
	ErrCodeInternal     = "INTERNAL"
)

// CodedError is an error with an associated error code.
type CodedError = generate.CodedError

// WrapGenerateError makes sure every failure leaving a tool carries a code.
func WrapGenerateError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if !errors.As(err, &coded) {
		coded = &CodedError{
			Code:    ErrCodeInternal,
			Message: err.Error(),
			Cause:   err,
		}
	}

	slog.Warn("generation failed",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: resource + " not found: " + id,
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return generate.ErrInvalidInput(message, nil)
}
