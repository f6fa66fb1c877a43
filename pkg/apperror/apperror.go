package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidation      Code = "VALIDATION"
	CodeConflict        Code = "CONFLICT"
	CodeForbidden       Code = "FORBIDDEN"
	CodeUpstream        Code = "UPSTREAM"
)

// AppError carries a client-safe Message and an internal Cause.
// Only Message is ever written to a response.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another AppError by code and message so that wrapped sentinels
// (same error with a different cause) still compare equal.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// WithCause returns a copy of e with cause attached.
func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Cause: cause}
}

func Unauthenticated(msg string) *AppError { return New(CodeUnauthenticated, msg) }
func NotFound(msg string) *AppError        { return New(CodeNotFound, msg) }
func Validation(msg string) *AppError      { return New(CodeValidation, msg) }
func Conflict(msg string) *AppError        { return New(CodeConflict, msg) }
func Forbidden(msg string) *AppError       { return New(CodeForbidden, msg) }

func Upstream(cause error) *AppError {
	return Wrap(CodeUpstream, "something went wrong, please try again later", cause)
}

// From extracts the AppError in err's chain. Anything else is treated as an upstream failure.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Upstream(err)
}

// CodeOf returns the code of err, or CodeUpstream for foreign errors.
func CodeOf(err error) Code {
	return From(err).Code
}

func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
