package oerror

import "fmt"

// Error is the error type raised for contract violations inside roam. It is
// what assert panics with, so recovered values can be told apart from runtime
// panics.
type Error struct {
	Err string
}

// New formats a new Error.
func New(format string, args ...any) *Error {
	if len(args) == 0 {
		return &Error{Err: format}
	}
	return &Error{Err: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Err
}
