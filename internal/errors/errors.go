// Package errors defines the kind-tagged error used across the pipeline so
// callers can tell a bad config from a network failure without string matching.
package errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindConfig          Kind = "config"
	KindPreflight       Kind = "preflight"
	KindNetwork         Kind = "network"
	KindInvalidResponse Kind = "invalid_response"
	KindMissingField    Kind = "missing_field"
	KindDecode          Kind = "decode"
	KindFontUnavailable Kind = "font_unavailable"
	KindStorage         Kind = "storage"
	KindPrint           Kind = "print"
	KindUnknown         Kind = "unknown"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Wrap tags err with kind. An err that already carries a kind is returned as is
// so the innermost classification wins.
func Wrap(kind Kind, op, message string, err error) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return err
	}

	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   err,
	}
}

func New(kind Kind, op, message string) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
	}
}

// KindOf returns the kind of the first tagged error in the chain.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return KindUnknown
}

// IsKind checks whether the first tagged error in the chain matches kind.
func IsKind(err error, kind Kind) bool {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind == kind
	}
	return false
}
