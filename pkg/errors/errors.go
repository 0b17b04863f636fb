package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error for the transport boundary.
type Kind int

const (
	// KindInternal covers unexpected failures; the cause is never exposed.
	KindInternal Kind = iota
	// KindNotFound responds with the status code only and an empty body.
	KindNotFound
	// KindValidation responds with the machine readable code and message.
	KindValidation
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Kind    Kind   `json:"-"`
	Code    string `json:"error_code"`
	Message string `json:"error_message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target carries the same kind, status and code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Status == t.Status && e.Code == t.Code
}

// HasBody reports whether the error is rendered with a JSON body.
func (e *Error) HasBody() bool {
	return e != nil && e.Kind != KindNotFound
}

// New creates a new Error instance.
func New(kind Kind, code string, status int, message string) *Error {
	return &Error{Kind: kind, Code: code, Status: status, Message: message}
}

// Validation creates a 400 error carrying a client facing code.
func Validation(code, message string) *Error {
	return New(KindValidation, code, http.StatusBadRequest, message)
}

// Wrap attaches context to an existing error.
func Wrap(err error, base *Error, message string) *Error {
	wrapped := Clone(base, message)
	wrapped.Err = err
	return wrapped
}

// Internal wraps an unexpected error as a 500.
func Internal(err error, message string) *Error {
	return Wrap(err, ErrInternal, message)
}

// Predefined errors for common scenarios.
var (
	ErrNotFound       = New(KindNotFound, "", http.StatusNotFound, "resource not found")
	ErrDuplicate      = New(KindNotFound, "", http.StatusConflict, "resource already exists")
	ErrInvalidPayload = Validation("INVALID_PAYLOAD", "request body could not be decoded")
	ErrInternal       = New(KindInternal, "INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss      = errors.New("cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
