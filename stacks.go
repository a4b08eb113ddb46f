package main

import (
	"github.com/jcorbin/objforth/internal/object"
)

//// Data stack

func (vm *VM) push(r object.Ref) { vm.ds.Push(r) }

// pop removes the top of the data stack. The value is held until the
// running primitive returns, so it survives collections that its own
// allocations trigger.
func (vm *VM) pop() object.Ref {
	r, err := vm.ds.Pop()
	vm.haltif(err)
	vm.heap.Keep(r)
	return r
}

func (vm *VM) peek(n int) object.Ref {
	r, err := vm.ds.Peek(n)
	vm.haltif(err)
	return r
}

func (vm *VM) pushNumber(n float64) {
	r, err := vm.heap.NewNumber(n)
	vm.haltif(err)
	vm.push(r)
}

func (vm *VM) pushBool(b bool) {
	if b {
		vm.pushNumber(-1)
	} else {
		vm.pushNumber(0)
	}
}

func (vm *VM) pushString(s string) {
	r, err := vm.heap.NewString(s)
	vm.haltif(err)
	vm.push(r)
}

func (vm *VM) popNumber() float64 {
	n, err := vm.heap.Number(vm.pop())
	vm.haltif(err)
	return n
}

func (vm *VM) popInt(op string) int {
	i, err := vm.heap.Int(op, vm.pop())
	vm.haltif(err)
	return i
}

//// Return stack

func (vm *VM) pushFrame(caller object.Ref, ip int) {
	if vm.rs.Len() >= vm.maxDepth {
		vm.halt(ErrReturnOverflow)
	}
	r, err := vm.heap.Alloc(&object.Frame{
		Caller: caller,
		IP:     ip,
		Loops:  vm.ls.Len(),
	})
	vm.haltif(err)
	vm.rs.Push(r)
}

func (vm *VM) popFrame() *object.Frame {
	r, err := vm.rs.Pop()
	vm.haltif(err)
	f, err := object.As[*object.Frame](vm.heap, r)
	vm.haltif(err)
	return f
}

//// Loop stack

func (vm *VM) pushLoop(index, limit float64) {
	r, err := vm.heap.Alloc(&object.Loop{Index: index, Limit: limit})
	vm.haltif(err)
	vm.ls.Push(r)
}

// loopAt returns the n-th innermost loop frame.
func (vm *VM) loopAt(n int) *object.Loop {
	r, err := vm.ls.Peek(n)
	vm.haltif(err)
	l, err := object.As[*object.Loop](vm.heap, r)
	vm.haltif(err)
	return l
}

func (vm *VM) dropLoop() {
	_, err := vm.ls.Pop()
	vm.haltif(err)
}

//// Control stack

func (vm *VM) pushMarker(c object.Construct, offset int) {
	r, err := vm.heap.Alloc(&object.Marker{Construct: c, Offset: offset})
	vm.haltif(err)
	vm.cs.Push(r)
}

func (vm *VM) peekMarker() (*object.Marker, bool) {
	if vm.cs.Len() == 0 {
		return nil, false
	}
	r, err := vm.cs.Peek(0)
	vm.haltif(err)
	m, err := object.As[*object.Marker](vm.heap, r)
	vm.haltif(err)
	return m, true
}

// popMarker resolves the innermost open construct, which must be want. An
// enclosing colon definition hides any constructs outside of it.
func (vm *VM) popMarker(token string, want object.Construct) int {
	m, ok := vm.peekMarker()
	if !ok || m.Construct == object.MarkColon && want != object.MarkColon {
		vm.halt(CompileError{token, "no open " + want.String()})
	}
	if m.Construct != want {
		vm.halt(CompileError{token, "unterminated " + m.Construct.String()})
	}
	_, err := vm.cs.Pop()
	vm.haltif(err)
	return m.Offset
}
