// Package apperr define la taxonomía de errores compartida por los módulos.
// Los servicios clasifican; la capa HTTP decide el status.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrNotAvailable    = errors.New("not available")
	ErrConflict        = errors.New("conflict")
)

// Error lleva un mensaje legible para el usuario y el kind que lo clasifica.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func Invalid(format string, args ...any) error {
	return &Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func NotAvailable(format string, args ...any) error {
	return &Error{Kind: ErrNotAvailable, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

// Code devuelve un identificador estable del kind ("" si no está clasificado).
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotAvailable):
		return "not_available"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return ""
	}
}
