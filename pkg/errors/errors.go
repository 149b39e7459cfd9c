// Package errors provides the error helpers used throughout homeshift.
//
// Errors are wrapped with WithContext as they travel up the stack so that
// the final message reads as a chain of operations ("run copy phase: sync
// Documents: exit status 23"). FriendlyError marks messages that should be
// shown to the user verbatim, without the wrapping context.
package errors

import (
	stderrors "errors"
	"fmt"
)

// New returns an error with the given message.
func New(msg string) error {
	return stderrors.New(msg)
}

// ContextError annotates an underlying error with the operation that failed.
type ContextError struct {
	Context string
	Err     error
}

func (err ContextError) Error() string {
	return err.Context + ": " + err.Err.Error()
}

// Unwrap makes ContextError compatible with errors.Is and errors.As.
func (err ContextError) Unwrap() error {
	return err.Err
}

// WithContext wraps err with a short description of the operation that
// produced it. If err is nil, WithContext returns nil so callers can wrap
// unconditionally.
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return ContextError{Context: context, Err: err}
}

// RootCause returns the innermost error in a chain of ContextErrors.
func RootCause(err error) error {
	for {
		ctxErr, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = ctxErr.Err
	}
}

// FileNotFound represents when we were unable to access a file because the
// path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// FriendlyError is an error whose message is meant for end users. It is
// printed as-is, without the "context: cause" chain.
type FriendlyError struct {
	Message string
}

func (err FriendlyError) Error() string {
	return err.Message
}

// NewFriendlyError returns a FriendlyError with a formatted message.
func NewFriendlyError(format string, args ...interface{}) error {
	return FriendlyError{Message: fmt.Sprintf(format, args...)}
}

// GetPrintableMessage returns the message that should be shown to the user
// for err: the bare message for friendly errors, the full chain otherwise.
func GetPrintableMessage(err error) string {
	var friendly FriendlyError
	if stderrors.As(err, &friendly) {
		return friendly.Message
	}
	return err.Error()
}
