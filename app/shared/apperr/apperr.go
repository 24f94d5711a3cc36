package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the RPC boundary.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindOrdering    Kind = "ordering"
	KindPersistence Kind = "persistence"
)

// Sentinel values usable with errors.Is. Any *Error of the same kind matches.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrOrdering    = &Error{Kind: KindOrdering}
	ErrPersistence = &Error{Kind: KindPersistence}
)

// Error is the single error type surfaced by services.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind so callers can write errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Field == ""
}

// Validation reports a bad input value for field.
func Validation(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a reference to a record that does not exist in its expected scope.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Field: entity, Message: fmt.Sprintf("%s %q not found", entity, id)}
}

// Ordering reports a reorder request that is not a permutation of the scope.
func Ordering(format string, args ...any) *Error {
	return &Error{Kind: KindOrdering, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a gateway failure. The original error stays reachable through Unwrap.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindPersistence, Message: op, Err: err}
}

// KindOf returns the kind of err, or KindPersistence for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindPersistence
}
