package main

import (
	"fmt"
	"io"

	"github.com/jcorbin/objforth/internal/flushio"
	"github.com/jcorbin/objforth/internal/runeio"
)

// Core holds the VM's host facing plumbing: logging and output.
type Core struct {
	logging
	out     flushio.WriteFlusher
	closers []io.Closer
}

// Close flushes output and closes any streams handed to the VM.
func (core *Core) Close() (err error) {
	if core.out != nil {
		err = core.out.Flush()
	}
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	core.closers = nil
	return err
}

// halt aborts the running unit with err, after a best effort to flush
// output and trace the cause; Eval recovers it.
func (core *Core) halt(err error) {
	func() {
		defer func() { _ = recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
		core.logf("#", "halt: %v", err)
	}()
	panic(haltError{err})
}

func (core *Core) haltif(err error) {
	if err != nil {
		core.halt(err)
	}
}

func (core *Core) flush() {
	core.haltif(core.out.Flush())
}

func (core *Core) writeRune(r rune) {
	_, err := runeio.WriteANSIRune(core.out, r)
	core.haltif(err)
}

func (core *Core) writeString(s string) {
	_, err := io.WriteString(core.out, s)
	core.haltif(err)
}

// logging traces VM activity through an optional printf-style function.
// Each line leads with a short mark naming its source, padded so that
// messages line up.
type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

// withLogPrefix prefixes every message until the returned func is called.
func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	if logfn == nil {
		return func() {}
	}
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() { log.logfn = logfn }
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(mark) > log.markWidth {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%*s %s", log.markWidth, mark, mess)
}
