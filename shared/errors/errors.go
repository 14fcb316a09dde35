package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// InputError means the request content is malformed, incomplete or refers to
// something that does not exist. Handlers answer it with 400.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) StatusCode() int {
	return http.StatusBadRequest
}

// AccessError means the caller is not allowed to do what it asked for, or its
// credential could not be resolved. Handlers answer it with 403.
type AccessError struct {
	Message string
}

func (e *AccessError) Error() string {
	return e.Message
}

func (e *AccessError) StatusCode() int {
	return http.StatusForbidden
}

// StatusCoder is implemented by errors that carry their own HTTP status.
// Anything else is an internal error.
type StatusCoder interface {
	error
	StatusCode() int
}

func Input(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

func Access(format string, args ...any) error {
	return &AccessError{Message: fmt.Sprintf(format, args...)}
}

func IsInput(err error) bool {
	var e *InputError
	return errors.As(err, &e)
}

func IsAccess(err error) bool {
	var e *AccessError
	return errors.As(err, &e)
}

// Status returns the HTTP status for err, 500 when err carries none.
func Status(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
