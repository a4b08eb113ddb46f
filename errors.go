package main

import (
	"errors"
	"fmt"
)

// ErrReturnOverflow is raised when colon calls nest deeper than the
// configured maximum.
var ErrReturnOverflow = errors.New("return stack overflow")

// ErrDivideByZero is raised by integer division words given a zero divisor.
var ErrDivideByZero = errors.New("division by zero")

// CompileError reports malformed source, such as an unbalanced control
// structure.
type CompileError struct {
	Token  string
	Reason string
}

func (err CompileError) Error() string {
	if err.Token == "" {
		return fmt.Sprintf("compile error: %v", err.Reason)
	}
	return fmt.Sprintf("compile error at %q: %v", err.Token, err.Reason)
}

// UndefinedWordError reports a token that is neither a known word nor a
// numeric literal.
type UndefinedWordError struct {
	Token string
}

func (err UndefinedWordError) Error() string {
	return fmt.Sprintf("undefined word %q", err.Token)
}

// codeError reports a corrupt compiled body.
type codeError struct {
	word string
	ip   int
	what string
}

func (err codeError) Error() string {
	return fmt.Sprintf("invalid code in %v @%v: %v", err.word, err.ip, err.what)
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}

func (err haltError) Unwrap() error { return err.error }
