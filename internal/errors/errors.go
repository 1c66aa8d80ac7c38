package errors

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category for the callable notification
// surface. The set mirrors the error contract exposed to interactive callers.
type Kind string

const (
	// KindInvalidArgument means the caller omitted or malformed a required field.
	KindInvalidArgument Kind = "invalid-argument"
	// KindNotFound means a referenced record (typically the user) does not exist.
	KindNotFound Kind = "not-found"
	// KindFailedPrecondition means the record exists but is not in a state that
	// allows the operation (e.g. a user without a push token).
	KindFailedPrecondition Kind = "failed-precondition"
	// KindInternal covers any other unexpected failure, including push delivery
	// errors on the callable path.
	KindInternal Kind = "internal"
)

// Error is a structured error carrying a kind and a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new Error wrapping an underlying cause. The cause's message
// is appended so interactive callers see the underlying failure.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the human-readable message from an error chain. For
// wrapped errors the underlying cause is included.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return e.Message
	}
	return err.Error()
}
