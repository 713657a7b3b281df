package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindUpstream     Kind = "upstream_service_error"
	KindPersistence  Kind = "persistence_error"
	KindConflict     Kind = "state_conflict_error"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindInternal     Kind = "internal_error"
)

// Sentinels for errors.Is checks against a Kind.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUpstream     = errors.New("upstream service failure")
	ErrPersistence  = errors.New("persistence failure")
	ErrConflict     = errors.New("state conflict")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden")
)

var sentinels = map[Kind]error{
	KindValidation:   ErrValidation,
	KindUpstream:     ErrUpstream,
	KindPersistence:  ErrPersistence,
	KindConflict:     ErrConflict,
	KindNotFound:     ErrNotFound,
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
}

// Error is a classified application error rendered as {message, type, details}.
type Error struct {
	Kind    Kind
	Message string
	// Type carries the provider specific error type for upstream failures.
	Type    string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// WithDetail attaches a key to the error details and returns e.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Upstream(providerType, message string, err error) *Error {
	return &Error{Kind: KindUpstream, Type: providerType, Message: message, Err: err}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// From extracts the classified error from err, if any.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
