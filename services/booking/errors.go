package booking

import "auditorium/services/errs"

// Re-export the shared error taxonomy so callers of this package keep using
// booking.ErrConflict and friends.
type (
	Error = errs.Error
	Kind  = errs.Kind
)

const (
	KindValidation      = errs.KindValidation
	KindNotFound        = errs.KindNotFound
	KindConflict        = errs.KindConflict
	KindAuthorization   = errs.KindAuthorization
	KindDependency      = errs.KindDependency
	KindUnauthenticated = errs.KindUnauthenticated
)

var (
	ErrValidation      = errs.ErrValidation
	ErrNotFound        = errs.ErrNotFound
	ErrConflict        = errs.ErrConflict
	ErrAuthorization   = errs.ErrAuthorization
	ErrDependency      = errs.ErrDependency
	ErrUnauthenticated = errs.ErrUnauthenticated
)

var (
	NewValidationError      = errs.NewValidationError
	NewNotFoundError        = errs.NewNotFoundError
	NewConflictError        = errs.NewConflictError
	NewAuthorizationError   = errs.NewAuthorizationError
	NewUnauthenticatedError = errs.NewUnauthenticatedError
	NewDependencyError      = errs.NewDependencyError
	KindOf                  = errs.KindOf
)
