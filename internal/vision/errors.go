package vision

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an analysis failed. Callers render every kind the
// same way; the kind only feeds logs and metrics.
type ErrorKind string

const (
	KindInvalid   ErrorKind = "invalid"
	KindNetwork   ErrorKind = "network"
	KindAuth      ErrorKind = "auth"
	KindService   ErrorKind = "service"
	KindMalformed ErrorKind = "malformed"
)

// Error is returned for every failed analysis
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// IsKind reports whether err is a vision Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var vErr *Error
	return errors.As(err, &vErr) && vErr.Kind == kind
}
