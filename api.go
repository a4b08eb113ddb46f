package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/objforth/internal/object"
	"github.com/jcorbin/objforth/internal/panicerr"
)

// New builds a VM with the primitive word set and, unless disabled with
// WithoutPrelude, the prelude words. It fails if the heap capacity cannot
// hold them.
func New(opts ...VMOption) (*VM, error) {
	var vm VM
	defaultOptions.apply(&vm)
	VMOptions(opts).apply(&vm)
	if err := vm.guard("init", vm.init); err != nil {
		return nil, err
	}
	if vm.prelude {
		var src strings.Builder
		if _, err := prelude.WriteTo(&src); err != nil {
			return nil, err
		}
		restore := vm.withLogPrefix(prelude.Name() + ": ")
		err := vm.Eval(context.Background(), src.String())
		restore()
		if err != nil {
			return nil, fmt.Errorf("%v: %w", prelude.Name(), err)
		}
	}
	return &vm, nil
}

// Eval compiles src as one unit and runs it. If the unit fails to compile
// its definitions are discarded; definitions made by a unit that compiled
// survive a failure while it runs. On any failure every stack is cleared
// and the returned error is the cause, such as a CompileError or an
// object.TypeError; the VM remains usable.
func (vm *VM) Eval(ctx context.Context, src string) error {
	vm.ctx = ctx
	err := vm.guard("eval", func() { vm.eval(src) })
	if err != nil {
		vm.reset()
	}
	return err
}

// guard runs f, converting a halt into its cause.
func (vm *VM) guard(name string, f func()) error {
	err := panicerr.Recover(name, func() error {
		f()
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		err = halt.error
	}
	return err
}

// Push places r on the data stack.
func (vm *VM) Push(r object.Ref) { vm.ds.Push(r) }

// PushNumber allocates a number and places it on the data stack.
func (vm *VM) PushNumber(n float64) error {
	r, err := vm.heap.NewNumber(n)
	if err == nil {
		vm.ds.Push(r)
	}
	return err
}

// Pop removes the top of the data stack. The returned value is no longer
// rooted, so it is only valid until the next allocation.
func (vm *VM) Pop() (object.Ref, error) { return vm.ds.Pop() }

// Stack returns a copy of the data stack, bottom first.
func (vm *VM) Stack() []object.Ref {
	return append([]object.Ref(nil), vm.ds.Elems...)
}

// Heap returns the object heap.
func (vm *VM) Heap() *object.Heap { return vm.heap }

// InstallPrimitive defines a word implemented by prim.
func (vm *VM) InstallPrimitive(name string, prim Primitive, immediate bool) error {
	return vm.guard("install", func() { vm.installPrimitive(name, prim, immediate) })
}

// InstallVariable defines a variable word whose value starts as value.
func (vm *VM) InstallVariable(name string, value object.Ref) error {
	return vm.guard("install", func() { vm.installWord(name, codeVariable, value) })
}

// InstallConstant defines a word that pushes value.
func (vm *VM) InstallConstant(name string, value object.Ref) error {
	return vm.guard("install", func() { vm.installWord(name, codeConstant, value) })
}

// Dump writes a description of the VM state to w.
func (vm *VM) Dump(w io.Writer) {
	vmDumper{vm: vm, out: w}.dump()
}
