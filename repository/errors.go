package repository

import (
	"github.com/pkg/errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Error wraps a data-access failure with the operation that caused it. Msg, when
// set, is a message fit for end users (e.g. the violated constraint).
type Error struct {
	Op  string
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(op string) error {
	return &Error{Op: op, Err: ErrNotFound}
}

func Duplicate(op, msg string) error {
	return &Error{Op: op, Msg: msg, Err: ErrDuplicate}
}

// Wrap annotates err with op; nil stays nil and *Error values pass through.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	return &Error{Op: op, Err: err}
}
