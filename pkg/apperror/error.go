// Package apperror holds errors that carry an HTTP status and a message that
// is safe to show to API clients. The wrapped cause only goes to the logs.
package apperror

import (
	"errors"
	"net/http"
)

// InternalMessage is the only text clients see for unexpected failures.
const InternalMessage = "An unexpected error occurred. Please try again later."

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsInternal reports whether the error is a server-side failure.
func (e *AppError) IsInternal() bool {
	return e.Code >= http.StatusInternalServerError
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// From returns the AppError in err's chain. Any other error becomes an
// opaque 500 that keeps err as its cause.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(http.StatusInternalServerError, InternalMessage, err)
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// InvalidInput is a 400 that keeps the cause, usually validator errors the
// error middleware turns into field messages.
func InvalidInput(message string, err error) *AppError {
	return New(http.StatusBadRequest, message, err)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}
