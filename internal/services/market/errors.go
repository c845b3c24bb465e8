package market

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Kind classifies a failed operation; the HTTP layer maps each kind to a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindForbidden
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is returned by every Service operation that fails.
type Error struct {
	Kind    Kind
	Message string
	// Details carries the joined field messages of a validation failure.
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func invalid(err error) *Error {
	return &Error{Kind: KindValidation, Message: "Validation error", Details: err.Error(), Err: err}
}

// Invalid builds a validation error for request-level problems such as a
// missing query parameter.
func Invalid(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// wrap keeps *Error values and turns anything else (commit failures,
// driver errors) into an internal error.
func wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return internal(message, err)
}

// writeErr classifies an insert/update failure; a unique index hit becomes a conflict.
func writeErr(err error, message, duplicate string) *Error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict(duplicate)
	}
	return internal(message, err)
}
