package errcode

import (
	"context"
	"errors"
)

// Code is a stable, tool-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK          Code = "ok"
	Unsupported Code = "unsupported"
	Timeout     Code = "timeout"
	Empty       Code = "empty"
	Closed      Code = "closed"

	// Family selection
	NoFamily        Code = "no_family"
	AmbiguousFamily Code = "ambiguous_family"
	UnknownFamily   Code = "unknown_family"
	UnknownChip     Code = "unknown_chip"

	// Board/plan
	UnknownBoard Code = "unknown_board"
	InvalidBaud  Code = "invalid_baud"
	InvalidPin   Code = "invalid_pin"
	InvalidPlan  Code = "invalid_plan"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.Timeout) match a wrapped *E.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	return Error
}

// FromContext maps a context termination to Timeout, keeping the cause.
func FromContext(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &E{C: Timeout, Op: op, Err: err}
	}
	return &E{C: Error, Op: op, Err: err}
}
