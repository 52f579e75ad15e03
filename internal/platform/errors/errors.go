// Package errors carries a coded error type shared by every layer
// import it as perr so it never shadows the standard errors package
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and the HTTP layer
// values go over the wire, append new codes at the end
type ErrorCode uint16

const (
	// ErrorCodeUnknown is anything we did not classify
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic marks a recovered panic
	ErrorCodePanic

	// ErrorCodeUnavailable means a dependency failed and a retry may work
	ErrorCodeUnavailable

	// ErrorCodeTooManyRequests is for rate limiting
	ErrorCodeTooManyRequests

	// ErrorCodeConflict means another writer holds the resource
	ErrorCodeConflict

	// ErrorCodeUnauthorized is a missing or wrong credential
	ErrorCodeUnauthorized

	// ErrorCodeForbidden is a known caller without the right
	ErrorCodeForbidden

	// ErrorCodeInvalidArgument is well formed input we cannot use
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is input that breaks a declared rule
	ErrorCodeValidation

	// ErrorCodeJSON is a body or blob that is not the expected JSON
	ErrorCodeJSON

	// ErrorCodeNotFound is a missing resource
	ErrorCodeNotFound

	// ErrorCodeDuplicateKey is a unique constraint hit
	ErrorCodeDuplicateKey

	// ErrorCodeDB is a database failure with no better class
	ErrorCodeDB

	// ErrorCodeUnsupportedMedia is an upload whose type we cannot read
	ErrorCodeUnsupportedMedia

	// ErrorCodeTooLarge is a body over the configured limit
	ErrorCodeTooLarge
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeUnavailable:      http.StatusServiceUnavailable,
	ErrorCodeTooManyRequests:  http.StatusTooManyRequests,
	ErrorCodeConflict:         http.StatusConflict,
	ErrorCodeDuplicateKey:     http.StatusConflict,
	ErrorCodeUnauthorized:     http.StatusUnauthorized,
	ErrorCodeForbidden:        http.StatusForbidden,
	ErrorCodeInvalidArgument:  http.StatusUnprocessableEntity,
	ErrorCodeValidation:       http.StatusBadRequest,
	ErrorCodeJSON:             http.StatusBadRequest,
	ErrorCodeNotFound:         http.StatusNotFound,
	ErrorCodeUnsupportedMedia: http.StatusUnsupportedMediaType,
	ErrorCodeTooLarge:         http.StatusRequestEntityTooLarge,
}

// HTTPStatusCode maps a code to its HTTP status, 500 when unmapped
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is returned by single row reads that matched nothing
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is a coded error with an optional offending field and cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the error body the API sends
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the cause
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, empty when none
func (e *Error) Field() string { return e.field }

// WireFrom renders any error for the API, foreign errors become Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root follows Unwrap to the innermost cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf returns the outermost code in the chain, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// HTTPStatus maps any error to an HTTP status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As finds the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WithField returns a copy of err naming the offending field
// errors that are not ours pass through unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// New returns a coded error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a coded error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap attaches a code and message to orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Detailf narrows a sentinel with a specific message
// the result keeps the sentinel code and still matches it under errors.Is
func Detailf(kind error, format string, a ...any) error {
	return &Error{code: CodeOf(kind), msg: fmt.Sprintf(format, a...), orig: kind}
}

// NotFoundf returns a not found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// DBf returns a database error
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a recovered panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf returns an unauthorized error
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// Conflictf returns a conflict error
func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }

// TooLargef returns a payload too large error
func TooLargef(format string, a ...any) error { return Newf(ErrorCodeTooLarge, format, a...) }
