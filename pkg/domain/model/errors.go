package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("user is not authenticated")
	ErrForbidden       = errors.New("access denied for current role")
)

// ValidationError reports a precondition failure detected before any call to
// the store was made.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteError carries a failure reported by the backing store. Error returns
// the store message verbatim.
type RemoteError struct {
	Op  string
	Err error
}

func NewRemoteError(op string, err error) *RemoteError {
	return &RemoteError{Op: op, Err: err}
}

func (e *RemoteError) Error() string {
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsRemoteError(err error) bool {
	var target *RemoteError
	return errors.As(err, &target)
}
