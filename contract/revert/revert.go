// Package revert carries the rejection taxonomy of the validators. Every
// rejection is fatal for the whole transaction; the Kind tells callers which
// class of predicate failed, the same way a contract revert carries a symbol.
package revert

import (
	"errors"
	"fmt"
)

// Kind is the short symbol of a rejection class.
type Kind string

const (
	Authorization Kind = "authorization_error"
	State         Kind = "state_error"
	Schema        Kind = "schema_error"
	Accounting    Kind = "accounting_error"
	Deadline      Kind = "deadline_error"
	Reference     Kind = "reference_error"
	InvalidAction Kind = "invalid_action_error"
)

// Error is a validator rejection.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

// Error renders "msg (kind)" plus the cause when present.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Msg, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Msg, e.Kind)
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by kind, so errors.Is(err, revert.Of(revert.State)) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Msg == "" && e.Kind == t.Kind
	}
	return false
}

// New builds a rejection.
// Example payload: revert.New(revert.State, "campaign not running")
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds a rejection with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds a rejection around a lower level error (codec, lookup).
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Of returns a kind-only sentinel for errors.Is comparisons.
func Of(kind Kind) *Error {
	return &Error{Kind: kind}
}

// KindOf extracts the kind of err, empty when err is not a rejection.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a rejection of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
