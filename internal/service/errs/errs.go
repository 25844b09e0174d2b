// Package errs holds the error kinds the service layer reports to transports.
// Any error that is neither a validation nor a not-found error is internal.
package errs

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// Error is a classified error whose message is safe to return to clients.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

// Validation returns an ErrValidation error with the given message.
func Validation(msg string) error {
	return &Error{kind: ErrValidation, msg: msg}
}

// NotFound returns an ErrNotFound error with the given message.
func NotFound(msg string) error {
	return &Error{kind: ErrNotFound, msg: msg}
}
