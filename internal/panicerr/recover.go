package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f on a new goroutine and waits for it. A panic or a
// runtime.Goexit inside f is returned as a non-nil error rather than
// crashing or silently stopping the caller.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		exited := true
		defer func() {
			if exited {
				errch <- exitError(name)
			}
			close(errch)
		}()
		defer func() {
			if e := recover(); e != nil {
				exited = false
				errch <- panicError{name: name, value: e, stack: debug.Stack()}
			}
		}()
		err := f()
		exited = false
		errch <- err
	}()
	return <-errch
}

type panicError struct {
	name  string
	value interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "panic: %v", pe.value)
	} else {
		fmt.Fprintf(f, "%v panic: %v", pe.name, pe.value)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.value.(error)
	return err
}

// IsPanic returns true if err carries a recovered panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicValue returns the value passed to panic, if err carries one.
func PanicValue(err error) (interface{}, bool) {
	var pe panicError
	if errors.As(err, &pe) {
		return pe.value, true
	}
	return nil, false
}

// PanicStack returns the goroutine stack captured with a recovered panic,
// or the empty string.
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

// IsExit returns true if err reports a goroutine that called runtime.Goexit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}
