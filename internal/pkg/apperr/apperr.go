// Package apperr discriminates failure kinds so callers can apply different
// reporting policy: validation failures never open a transaction, while
// persistence failures require rollback and compensating cleanup.
package apperr

import "errors"

// Kind classifies an application error.
type Kind int

const (
	KindValidation Kind = iota
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a classified application error with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation reports bad input. No side effects have occurred.
func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// Forbidden reports a permission failure.
func Forbidden(msg string) error { return &Error{Kind: KindForbidden, Message: msg} }

// NotFound reports a missing entity.
func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// Conflict reports a uniqueness or state conflict.
func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

// KindOf returns the kind of err and whether err is an application error.
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
