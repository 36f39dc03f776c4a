// Package errs is the error taxonomy shared by the services and mapped to HTTP
// statuses by the handlers.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error for callers and for the HTTP layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindAuthorization
	KindDependency
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindAuthorization:
		return "not authorized"
	case KindDependency:
		return "dependency failure"
	case KindUnauthenticated:
		return "not authenticated"
	}
	return "unknown error"
}

// Error is the typed error returned by the services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the same kind, so errors.Is(err, ErrConflict) works
// for any conflict error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is. ErrUnauthenticated covers bad credentials, as
// opposed to missing permissions.
var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrAuthorization   = &Error{Kind: KindAuthorization}
	ErrDependency      = &Error{Kind: KindDependency}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
)

func NewValidationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewAuthorizationError(format string, args ...any) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthenticatedError(format string, args ...any) error {
	return &Error{Kind: KindUnauthenticated, Message: fmt.Sprintf(format, args...)}
}

func NewDependencyError(message string, err error) error {
	return &Error{Kind: KindDependency, Message: message, Err: err}
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
