package utils

import (
	"errors"
	"net/http"
)

// AppError is a domain error carrying the HTTP status it should surface as.
// Services raise these; handlers unwrap them into the response envelope.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func ErrBadRequest(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func ErrUnauthorized(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message}
}

func ErrForbidden(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}

func ErrConflict(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

// AsAppError unwraps err to an AppError if one is in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
