package main

import (
	"context"

	"github.com/jcorbin/objforth/internal/fileinput"
	"github.com/jcorbin/objforth/internal/object"
)

// VM is a threaded code virtual machine over an object heap.
//
// Every piece of state that refers to heap objects lives in the heap
// itself, reachable from the roots reported by traceRoots: the data, call
// frame, loop and compiler marker stacks, both dictionaries, the source of
// the unit being compiled, the word under construction and the running
// word. Stacks are Stack objects; the VM caches their Go pointers.
type VM struct {
	Core
	in fileinput.Input

	capacity int
	stress   bool
	maxDepth int
	prelude  bool

	heap *object.Heap
	ctx  context.Context

	dstack, rstack, lstack, cstack object.Ref
	ds, rs, ls, cs                 *object.Stack

	// permanent and in-progress dictionaries
	words    object.Ref
	newWords object.Ref

	// compiler state
	input     object.Ref
	inputPos  int
	compiling object.Ref
	defs      []definition
	last      object.Ref

	// interpreter state
	running object.Ref
	body    []object.Cell
	ip      int

	codes     []Primitive
	codeNames []string
	internal  internalWords
}

// Primitive implements a word in Go. Operands are taken from and results
// left on the data stack; failures halt the VM.
type Primitive func(vm *VM)

// definition saves the compilation context interrupted by a colon
// definition.
type definition struct {
	outer object.Ref
}

// internalWords are the runtime words that the compiler emits; their refs
// are rooted so that redefining a name cannot break compiled code.
type internalWords struct {
	lit, obj, set   object.Ref
	branch, zbranch object.Ref
	do, loop, plus  object.Ref
	exit            object.Ref
}

func (iw *internalWords) each(visit func(object.Ref)) {
	for _, r := range []object.Ref{
		iw.lit, iw.obj, iw.set,
		iw.branch, iw.zbranch,
		iw.do, iw.loop, iw.plus,
		iw.exit,
	} {
		visit(r)
	}
}

// Word codes below codePrimitive are executed by the interpreter itself.
const (
	codeColon object.Code = iota
	codeConstant
	codeVariable
	codePrimitive
)

const defaultMaxDepth = 1024

func (vm *VM) init() {
	if vm.codes == nil {
		vm.codes = make([]Primitive, codePrimitive, int(codePrimitive)+len(primitives))
		vm.codeNames = []string{"colon", "constant", "variable"}
	}
	if vm.maxDepth <= 0 {
		vm.maxDepth = defaultMaxDepth
	}
	if vm.ctx == nil {
		vm.ctx = context.Background()
	}

	vm.heap = object.NewHeap(vm.capacity)
	vm.heap.SetStress(vm.stress)
	if vm.logfn != nil {
		vm.heap.SetLogf(func(mess string, args ...interface{}) {
			vm.logf("gc", mess, args...)
		})
	}
	vm.heap.AddRoot(vm.traceRoots)

	vm.dstack, vm.ds = vm.newStack("data stack")
	vm.rstack, vm.rs = vm.newStack("return stack")
	vm.lstack, vm.ls = vm.newStack("loop stack")
	vm.cstack, vm.cs = vm.newStack("control stack")

	var err error
	vm.words, err = vm.heap.NewTable()
	vm.haltif(err)

	for _, def := range primitives {
		vm.installPrimitive(def.name, def.prim, def.immediate)
	}
	vm.internal = internalWords{
		lit:     vm.mustLookup("(lit)"),
		obj:     vm.mustLookup("(obj)"),
		set:     vm.mustLookup("(set)"),
		branch:  vm.mustLookup("(branch)"),
		zbranch: vm.mustLookup("(zbranch)"),
		do:      vm.mustLookup("(do)"),
		loop:    vm.mustLookup("(loop)"),
		plus:    vm.mustLookup("(+loop)"),
		exit:    vm.mustLookup("(exit)"),
	}
}

func (vm *VM) newStack(name string) (object.Ref, *object.Stack) {
	r, err := vm.heap.NewStack(name)
	vm.haltif(err)
	s, err := vm.heap.Stack(r)
	vm.haltif(err)
	return r, s
}

func (vm *VM) traceRoots(visit func(object.Ref)) {
	visit(vm.dstack)
	visit(vm.rstack)
	visit(vm.lstack)
	visit(vm.cstack)
	visit(vm.words)
	visit(vm.newWords)
	visit(vm.input)
	visit(vm.compiling)
	for _, def := range vm.defs {
		visit(def.outer)
	}
	visit(vm.last)
	visit(vm.running)
	vm.internal.each(visit)
}

// reset abandons the unit in progress, leaving the permanent dictionary and
// heap intact.
func (vm *VM) reset() {
	vm.ds.Truncate(0)
	vm.rs.Truncate(0)
	vm.ls.Truncate(0)
	vm.cs.Truncate(0)
	vm.newWords = object.Ref{}
	vm.input = object.Ref{}
	vm.inputPos = 0
	vm.compiling = object.Ref{}
	vm.defs = nil
	vm.running = object.Ref{}
	vm.body = nil
	vm.ip = 0
	vm.heap.ClearHold()
}

func (vm *VM) word(w object.Ref) *object.Word {
	word, err := vm.heap.Word(w)
	vm.haltif(err)
	return word
}

func (vm *VM) wordName(w object.Ref) string {
	if word, err := vm.heap.Word(w); err == nil && word != nil {
		if word.Name == "" {
			return "<unit>"
		}
		return word.Name
	}
	return w.String()
}
