package intcode

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure of parsing, decoding or execution.
type ErrorCode uint8

const (
	CodeInvalidOpcode      ErrorCode = iota + 1 // op outside the instruction table
	CodeInvalidMode                             // mode digit outside 0..2
	CodeInvalidDestination                      // immediate mode on a write target
	CodeInvalidRead                             // input record unavailable
	CodeInvalidWrite                            // output sink rejected a record
	CodeInvalidInput                            // malformed program text
	CodeNotSeekable                             // Feed on an input that cannot grow
)

// Sentinels for use with errors.Is. Every *Error matches the sentinel of
// its code.
var (
	ErrInvalidOpcode      = errors.New("invalid opcode")
	ErrInvalidMode        = errors.New("invalid addressing mode")
	ErrInvalidDestination = errors.New("invalid addressing mode for destination")
	ErrInvalidRead        = errors.New("invalid read")
	ErrInvalidWrite       = errors.New("invalid write")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotSeekable        = errors.New("input is not seekable")
)

func (c ErrorCode) sentinel() error {
	switch c {
	case CodeInvalidOpcode:
		return ErrInvalidOpcode
	case CodeInvalidMode:
		return ErrInvalidMode
	case CodeInvalidDestination:
		return ErrInvalidDestination
	case CodeInvalidRead:
		return ErrInvalidRead
	case CodeInvalidWrite:
		return ErrInvalidWrite
	case CodeInvalidInput:
		return ErrInvalidInput
	case CodeNotSeekable:
		return ErrNotSeekable
	default:
		return nil
	}
}

// String returns the message of the code's sentinel.
func (c ErrorCode) String() string {
	if s := c.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("ErrorCode(%d)", uint8(c))
}

// Error is the failure type returned by this package.
type Error struct {
	Code  ErrorCode
	Addr  Address // instruction address, or token index for CodeInvalidInput
	Value int64   // offending opcode or mode digit
	Err   error   // underlying cause, if any
}

func (e *Error) Error() string {
	var msg string
	switch e.Code {
	case CodeInvalidOpcode:
		msg = fmt.Sprintf("invalid opcode %d at %d", e.Value, e.Addr)
	case CodeInvalidMode:
		msg = fmt.Sprintf("invalid addressing mode %d at %d", e.Value, e.Addr)
	case CodeInvalidDestination:
		msg = fmt.Sprintf("invalid addressing mode for destination at %d", e.Addr)
	case CodeInvalidInput:
		msg = fmt.Sprintf("invalid input: token %d", e.Addr)
	case CodeNotSeekable:
		msg = e.Code.String()
	default:
		msg = fmt.Sprintf("%s at %d", e.Code, e.Addr)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's code.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Code.sentinel()
}

// CodeOf returns the ErrorCode carried by err, or 0 if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
