package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// FieldError is a single field-level validation message, serialized the way
// the API has always reported validation failures.
type FieldError struct {
	Msg string `json:"msg"`
}

// ValidationResponse is the body returned for any validation-class failure.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// MessageResponse is the body returned for auth, not-found, and internal
// failures.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes for the application taxonomy.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// NewValidationError wraps a single field message as a validation failure.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Fields:  []FieldError{{Msg: message}},
	}
}

// NewValidationErrors aggregates several field messages into one failure.
func NewValidationErrors(messages ...string) *AppError {
	fields := make([]FieldError, 0, len(messages))
	for _, m := range messages {
		fields = append(fields, FieldError{Msg: m})
	}
	msg := "validation failed"
	if len(messages) > 0 {
		msg = messages[0]
	}
	return &AppError{
		Code:    CodeValidation,
		Message: msg,
		Fields:  fields,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

// NewUpstreamError marks a third-party API failure. Handlers map it to the
// same response class as NotFound so upstream detail is never leaked.
func NewUpstreamError(err error) *AppError {
	return &AppError{
		Code:    CodeUpstream,
		Message: "upstream request failed",
		Err:     err,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "server error",
		Err:     err,
	}
}

// StatusFor maps an error onto its HTTP status class. Unknown errors are
// treated as internal.
func StatusFor(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeNotFound, CodeUpstream:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError writes the standardized error body for err with the given
// status. Validation failures enumerate field messages; everything else is a
// single message with no internal detail.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if appErr, ok := err.(*AppError); ok {
		if appErr.Code == CodeValidation {
			fields := appErr.Fields
			if len(fields) == 0 {
				fields = []FieldError{{Msg: appErr.Message}}
			}
			return c.Status(status).JSON(ValidationResponse{Errors: fields})
		}
		return c.Status(status).JSON(MessageResponse{Msg: appErr.Message})
	}
	return c.Status(status).JSON(MessageResponse{Msg: "server error"})
}
