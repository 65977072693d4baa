package relay

import (
	"errors"
	"fmt"
)

// ErrCodeSpaceExhausted is returned when pair code generation collides on
// every attempt. With 900000 possible codes this is effectively unreachable,
// but it is handled rather than assumed away.
var ErrCodeSpaceExhausted = errors.New("could not generate unique pair code")

// ValidationError marks missing or malformed input. Mapped to 400 and never
// logged at error level.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// NotFoundError marks an unresolvable pairing or resource. Mapped to 404.
type NotFoundError struct {
	resource string
}

func (e *NotFoundError) Error() string { return e.resource + " not found" }

func NotFound(resource string) error {
	return &NotFoundError{resource: resource}
}

func IsNotFound(err error) bool {
	var v *NotFoundError
	return errors.As(err, &v)
}

// DependencyError marks a store or transport failure on the critical path.
// Mapped to 500 and logged with context.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *DependencyError) Unwrap() error { return e.Err }

func Dependency(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}

func IsDependency(err error) bool {
	var v *DependencyError
	return errors.As(err, &v)
}
