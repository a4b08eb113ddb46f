package main

import (
	"io"

	"github.com/jcorbin/objforth/internal/fileinput"
	"github.com/jcorbin/objforth/internal/flushio"
)

// VMOption configures a VM built by New.
type VMOption interface{ apply(vm *VM) }

// VMOptions flattens several options into one.
type VMOptions []VMOption

func (opts VMOptions) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

var defaultOptions = VMOptions{
	withOutput{io.Discard},
	withCapacity(0),
	withMaxDepth(defaultMaxDepth),
	withPrelude(true),
}

type withLogfn func(mess string, args ...interface{})
type withInputs []io.Reader
type withOutput struct{ io.Writer }
type withTee struct{ io.Writer }
type withCapacity int
type withStressGC bool
type withMaxDepth int
type withPrelude bool

func (logfn withLogfn) apply(vm *VM) { vm.logfn = logfn }

func (ins withInputs) apply(vm *VM) {
	for _, r := range ins {
		if cl, ok := r.(io.Closer); ok {
			vm.closers = append(vm.closers, cl)
		}
		vm.in.Queue = append(vm.in.Queue, r)
	}
}

func (o withOutput) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o withTee) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.NewWriteFlusher(o.Writer))
}

func (n withCapacity) apply(vm *VM) { vm.capacity = int(n) }
func (b withStressGC) apply(vm *VM) { vm.stress = bool(b) }
func (n withMaxDepth) apply(vm *VM) { vm.maxDepth = int(n) }
func (b withPrelude) apply(vm *VM)  { vm.prelude = bool(b) }

// WithInput queues a named source stream to be read by Run.
func WithInput(name string, r io.Reader) VMOption {
	return withInputs{fileinput.Named(name, r)}
}

// WithInputs queues source streams to be read by Run, one after the other.
func WithInputs(rs ...io.Reader) VMOption { return withInputs(rs) }

// WithOutput directs the output of words like `.` and `emit`.
func WithOutput(w io.Writer) VMOption { return withOutput{w} }

// WithTee copies output to w as well.
func WithTee(w io.Writer) VMOption { return withTee{w} }

// WithLogf enables trace logging.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithCapacity sets the fixed number of heap slots; 0 selects the default.
func WithCapacity(n int) VMOption { return withCapacity(n) }

// WithStressGC collects garbage before every allocation.
func WithStressGC(stress bool) VMOption { return withStressGC(stress) }

// WithMaxDepth limits how deeply colon definitions may nest their calls.
func WithMaxDepth(n int) VMOption { return withMaxDepth(n) }

// WithoutPrelude skips compiling the prelude words at startup.
func WithoutPrelude() VMOption { return withPrelude(false) }
