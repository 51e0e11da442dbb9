package core

import "github.com/pkg/errors"

// FieldError carries an error message bound to one named struct field. Field
// holds the json tag name so handlers can echo it back verbatim.
type FieldError struct {
	Field string
	Error string
}

// ValidationError groups per-field errors raised while validating client
// input, such as a duplicate signup email or an unknown role.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks errors the process cannot recover from in place; the HTTP
// error handler turns them into a graceful server stop.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown reports whether err, at its cause, asks for a shutdown.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
