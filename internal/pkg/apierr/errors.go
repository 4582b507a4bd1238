package apierr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrConflict is returned when a request contradicts the current state of a resource.
	ErrConflict = New(fiber.StatusBadRequest, CodeConflict, "request conflicts with the current state of the resource")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

// APIError is an error that is rendered to the client as-is. Values are treated as immutable:
// Msg and Detailed return modified copies.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e APIError) Msg(format string, parts ...any) *APIError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

// Detailed sets the message and mirrors it into the "detail" field of the response body.
func (e APIError) Detailed(message string) *APIError {
	e.Message = message
	e.Extras = &Extras{
		"detail": message,
	}
	return &e
}

func NewInvalidViolations(violations any) *APIError {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
