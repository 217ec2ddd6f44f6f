// Package apperr gives handlers one error shape that carries an HTTP status.
package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New constructs a DomainError.
func New(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError is a 422: the request was understood but its content
// did not pass the form rules.
func NewValidationError(message string, details map[string]any, err error) *DomainError {
	de := New("VALIDATION_FAILED", message, http.StatusUnprocessableEntity, details)
	de.Err = err
	return de
}

func NewBadRequest(message string) *DomainError {
	return New("BAD_REQUEST", message, http.StatusBadRequest, nil)
}

func NewNotFound(resource string, details map[string]any) *DomainError {
	if details == nil {
		details = map[string]any{}
	}
	return New("NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound, details)
}

func NewInternalError(err error) *DomainError {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Sentinels listed in
// notFound map to 404 along with sql.ErrNoRows; everything else is a 500.
func ToDomainError(err error, notFound ...error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFound("resource", nil)
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			de := NewNotFound("resource", nil)
			de.Err = err
			return de
		}
	}
	return NewInternalError(err)
}
