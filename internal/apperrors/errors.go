// Package apperrors defines the error kinds the request boundary knows
// how to surface. Services return these; handlers map them to HTTP
// statuses through the response package.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTierNotFound
	KindPendingOrUnknown
	KindTransactionFailed
	KindConflict
)

// Error carries a kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// HTTPStatus maps the kind to the status surfaced at the boundary.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindPendingOrUnknown, KindTransactionFailed:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound, KindTierNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func Unauthorized(format string, args ...interface{}) *Error {
	return newError(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return newError(KindForbidden, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func TierNotFound(format string, args ...interface{}) *Error {
	return newError(KindTierNotFound, format, args...)
}

func PendingOrUnknown(format string, args ...interface{}) *Error {
	return newError(KindPendingOrUnknown, format, args...)
}

func TransactionFailed(format string, args ...interface{}) *Error {
	return newError(KindTransactionFailed, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// KindOf extracts the kind from err, or KindUnknown for any error that
// is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
