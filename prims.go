package main

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"github.com/jcorbin/objforth/internal/object"
)

type primitiveDef struct {
	name      string
	prim      Primitive
	immediate bool
}

// primitives is the built in word set, installed into every VM in order.
var primitives []primitiveDef

func init() {
	primitives = []primitiveDef{
		// runtime words emitted by the compiler
		{"(lit)", (*VM).runLit, false},
		{"(obj)", (*VM).runObj, false},
		{"(set)", (*VM).runSet, false},
		{"(branch)", (*VM).runBranch, false},
		{"(zbranch)", (*VM).runZBranch, false},
		{"(do)", (*VM).runDo, false},
		{"(loop)", (*VM).runLoop, false},
		{"(+loop)", (*VM).runPlusLoop, false},
		{"(exit)", (*VM).runExit, false},
		{"exit", (*VM).runExit, false},
		{"i", (*VM).loopIndex, false},
		{"j", (*VM).outerIndex, false},

		// compiler
		{":", (*VM).colon, true},
		{";", (*VM).semicolon, true},
		{"immediate", (*VM).immediate, true},
		{"recurse", (*VM).recurse, true},
		{"constant", (*VM).constant, true},
		{"var", (*VM).variableInit, true},
		{"variable", (*VM).variable, true},
		{"if", (*VM).compileIf, true},
		{"else", (*VM).compileElse, true},
		{"then", (*VM).compileThen, true},
		{"do", (*VM).compileDo, true},
		{"loop", (*VM).compileLoop, true},
		{"+loop", (*VM).compilePlusLoop, true},
		{"begin", (*VM).compileBegin, true},
		{"until", (*VM).compileUntil, true},
		{"again", (*VM).compileAgain, true},
		{"while", (*VM).compileWhile, true},
		{"repeat", (*VM).compileRepeat, true},
		{"(", (*VM).comment, true},
		{"\\", (*VM).lineComment, true},
		{"\"", (*VM).stringLit, true},
		{"see", (*VM).see, true},

		// stack
		{"dup", (*VM).dup, false},
		{"drop", (*VM).drop, false},
		{"swap", (*VM).swap, false},
		{"over", (*VM).over, false},
		{"nip", (*VM).nip, false},
		{"rot", (*VM).rot, false},
		{"pick", (*VM).pick, false},
		{"2drop", (*VM).twoDrop, false},
		{"2dup", (*VM).twoDup, false},
		{"depth", (*VM).depth, false},
		{".s", (*VM).printStack, false},

		// arithmetic
		{"+", (*VM).add, false},
		{"-", (*VM).sub, false},
		{"*", (*VM).mul, false},
		{"/", (*VM).div, false},
		{"mod", (*VM).mod, false},
		{"negate", (*VM).negate, false},
		{"abs", (*VM).abs, false},
		{"min", (*VM).min, false},
		{"max", (*VM).max, false},
		{"1+", (*VM).onePlus, false},
		{"1-", (*VM).oneMinus, false},
		{"2*", (*VM).twoMul, false},
		{"2/", (*VM).twoDiv, false},
		{"u2/", (*VM).uTwoDiv, false},
		{"and", (*VM).and, false},
		{"or", (*VM).or, false},
		{"xor", (*VM).xor, false},
		{"invert", (*VM).invert, false},
		{"<<", (*VM).shiftLeft, false},
		{">>", (*VM).shiftRight, false},
		{"u>>", (*VM).uShiftRight, false},

		// comparison
		{"=", (*VM).eq, false},
		{"<>", (*VM).ne, false},
		{"<", (*VM).lt, false},
		{">", (*VM).gt, false},
		{"u<", (*VM).uLess, false},
		{"0=", (*VM).zeroEq, false},
		{"0<", (*VM).zeroLess, false},

		// objects
		{"@", (*VM).fetch, false},
		{"!", (*VM).store, false},
		{"]", (*VM).index, false},
		{"{}", (*VM).newTable, false},
		{"[]", (*VM).newArray, false},
		{"#{}", (*VM).newHash, false},
		{"stack", (*VM).makeStack, false},
		{"gc", (*VM).collect, false},
		{"heap", (*VM).heapLive, false},

		// output
		{".", (*VM).dot, false},
		{"emit", (*VM).emit, false},
		{"cr", (*VM).cr, false},
		{"space", (*VM).space, false},
		{"type", (*VM).typeString, false},
		{"words", (*VM).listWords, false},
	}
}

//// Stack Operations

// Name    Function
// dup     push a copy of the top of stack
func (vm *VM) dup() { vm.push(vm.peek(0)) }

// Name    Function
// drop    discard the top of stack
func (vm *VM) drop() { vm.pop() }

// Name    Function
// swap    exchange the top 2 elements of stack
func (vm *VM) swap() { b, a := vm.pop(), vm.pop(); vm.push(b); vm.push(a) }

// Name    Function
// over    push a copy of the second element of stack
func (vm *VM) over() { vm.push(vm.peek(1)) }

// Name    Function
// nip     discard the second element of stack
func (vm *VM) nip() { b := vm.pop(); vm.pop(); vm.push(b) }

// Name    Function
// rot     rotate the third element of stack to the top
func (vm *VM) rot() {
	c, b, a := vm.pop(), vm.pop(), vm.pop()
	vm.push(b)
	vm.push(c)
	vm.push(a)
}

// Name    Function
// pick    pop n, then push a copy of the n-th element below the top
func (vm *VM) pick() { vm.push(vm.peek(vm.popInt("pick"))) }

// Name    Function
// 2drop   discard the top 2 elements of stack
func (vm *VM) twoDrop() { vm.pop(); vm.pop() }

// Name    Function
// 2dup    push copies of the top 2 elements of stack
func (vm *VM) twoDup() { vm.push(vm.peek(1)); vm.push(vm.peek(1)) }

// Name    Function
// depth   push the number of elements on the stack
func (vm *VM) depth() { vm.pushNumber(float64(vm.ds.Len())) }

// Name    Function
// .s      print the stack without changing it
func (vm *VM) printStack() {
	vm.writeString(fmt.Sprintf("<%v>", vm.ds.Len()))
	for _, r := range vm.ds.Elems {
		vm.writeString(" ")
		vm.haltif(vm.heap.Print(vm.out, r))
	}
	vm.writeString(" ")
}

//// Arithmetic Operators
//
// Plus and minus are polymorphic: numbers add and subtract, strings
// concatenate and compare; the rest work on numbers only.

// Symbol   Name    Function
// +        plus    pop top 2 elements of stack, add, push
func (vm *VM) add() {
	b, a := vm.pop(), vm.pop()
	r, err := vm.heap.Add(a, b)
	vm.haltif(err)
	vm.push(r)
}

// Symbol   Name    Function
// -        minus   pop top 2 elements of stack, subtract, push
func (vm *VM) sub() {
	b, a := vm.pop(), vm.pop()
	r, err := vm.heap.Sub(a, b)
	vm.haltif(err)
	vm.push(r)
}

func (vm *VM) binop(op func(a, b float64) float64) {
	b, a := vm.popNumber(), vm.popNumber()
	vm.pushNumber(op(a, b))
}

func (vm *VM) intop(name string, op func(a, b int) int) {
	b, a := vm.popInt(name), vm.popInt(name)
	vm.pushNumber(float64(op(a, b)))
}

// Symbol   Name       Function
// *        multiply   pop top 2 elements of stack, multiply, push
func (vm *VM) mul() { vm.binop(func(a, b float64) float64 { return a * b }) }

// Symbol   Name       Function
// /        divide     pop top 2 elements of stack, divide, push
func (vm *VM) div() { vm.binop(func(a, b float64) float64 { return a / b }) }

// Name   Function
// mod    pop top 2 elements of stack, push the integer remainder
func (vm *VM) mod() {
	vm.intop("mod", func(a, b int) int {
		if b == 0 {
			vm.halt(ErrDivideByZero)
		}
		return a % b
	})
}

// Name     Function
// negate   negate the top of stack
func (vm *VM) negate() { vm.pushNumber(-vm.popNumber()) }

// Name   Function
// abs    replace the top of stack with its magnitude
func (vm *VM) abs() { vm.pushNumber(math.Abs(vm.popNumber())) }

// Name   Function
// min    pop top 2 elements of stack, push the lesser
func (vm *VM) min() { vm.binop(math.Min) }

// Name   Function
// max    pop top 2 elements of stack, push the greater
func (vm *VM) max() { vm.binop(math.Max) }

// Name   Function
// 1+     increment the top of stack
func (vm *VM) onePlus() { vm.pushNumber(vm.popNumber() + 1) }

// Name   Function
// 1-     decrement the top of stack
func (vm *VM) oneMinus() { vm.pushNumber(vm.popNumber() - 1) }

// Name   Function
// 2*     double the integer top of stack
func (vm *VM) twoMul() { vm.pushNumber(float64(vm.popInt("2*") * 2)) }

// Name   Function
// 2/     halve the integer top of stack, truncating
func (vm *VM) twoDiv() { vm.pushNumber(float64(vm.popInt("2/") / 2)) }

// Name   Function
// u2/    halve the top of stack as an unsigned 32-bit integer
func (vm *VM) uTwoDiv() { vm.pushNumber(float64(vm.popUint32("u2/") >> 1)) }

// Name     Function
// and      bitwise and of the top 2 elements of stack
func (vm *VM) and() { vm.intop("and", func(a, b int) int { return a & b }) }

// Name     Function
// or       bitwise or of the top 2 elements of stack
func (vm *VM) or() { vm.intop("or", func(a, b int) int { return a | b }) }

// Name     Function
// xor      bitwise exclusive or of the top 2 elements of stack
func (vm *VM) xor() { vm.intop("xor", func(a, b int) int { return a ^ b }) }

// Name     Function
// invert   bitwise complement of the top of stack
func (vm *VM) invert() { vm.pushNumber(float64(^vm.popInt("invert"))) }

// popShift pops a shift count.
func (vm *VM) popShift(op string) uint {
	n, err := safecast.Conv[uint](vm.popInt(op))
	if err != nil {
		vm.halt(object.TypeError{Op: op, Kinds: []object.Kind{object.KindNumber}, Reason: "negative shift count"})
	}
	return n
}

func (vm *VM) popUint32(op string) uint32 { return uint32(vm.popInt(op)) }

// Symbol   Name          Function
// <<       shift left    pop a count and n, push n shifted left
func (vm *VM) shiftLeft() {
	cnt := vm.popShift("<<")
	vm.pushNumber(float64(vm.popInt("<<") << cnt))
}

// Symbol   Name          Function
// >>       shift right   pop a count and n, push n arithmetically shifted right
func (vm *VM) shiftRight() {
	cnt := vm.popShift(">>")
	vm.pushNumber(float64(vm.popInt(">>") >> cnt))
}

// Symbol   Name          Function
// u>>      shift right   pop a count and n, push n logically shifted right as
// an unsigned 32-bit integer
func (vm *VM) uShiftRight() {
	cnt := vm.popShift("u>>")
	vm.pushNumber(float64(vm.popUint32("u>>") >> cnt))
}

//// Comparison
//
// True is -1 and false is 0.

func (vm *VM) compare() int {
	b, a := vm.pop(), vm.pop()
	c, err := vm.heap.Compare(a, b)
	vm.haltif(err)
	return c
}

// Symbol   Name        Function
// =        equal       pop top 2 elements of stack, push whether they are equal
func (vm *VM) eq() { vm.pushBool(vm.compare() == 0) }

// Symbol   Name        Function
// <>       not equal   pop top 2 elements of stack, push whether they differ
func (vm *VM) ne() { vm.pushBool(vm.compare() != 0) }

// Symbol   Name        Function
// <        less        pop top 2 elements of stack, push whether a < b
func (vm *VM) lt() { vm.pushBool(vm.compare() < 0) }

// Symbol   Name        Function
// >        greater     pop top 2 elements of stack, push whether a > b
func (vm *VM) gt() { vm.pushBool(vm.compare() > 0) }

// Symbol   Name        Function
// u<       less        compare the top 2 elements as unsigned 32-bit integers
func (vm *VM) uLess() {
	b, a := vm.popUint32("u<"), vm.popUint32("u<")
	vm.pushBool(a < b)
}

// Symbol   Name        Function
// 0=       not         push whether the top of stack is false
func (vm *VM) zeroEq() { vm.pushBool(!vm.heap.Truthy(vm.pop())) }

// Symbol   Name        Function
// 0<       negative    push whether the top of stack is below 0
func (vm *VM) zeroLess() { vm.pushBool(vm.popNumber() < 0) }

//// Objects

// Symbol   Name    Function
// @        fetch   pop an address, or an index made by ], and push what it
// holds
func (vm *VM) fetch() {
	addr, index, err := vm.heap.Unindex(vm.pop())
	vm.haltif(err)
	r, err := vm.heap.Fetch(addr, index)
	vm.haltif(err)
	vm.push(r)
}

// Symbol   Name    Function
// !        store   pop an address, or an index made by ], then a value, and
// store the value into it
func (vm *VM) store() {
	addr, index, err := vm.heap.Unindex(vm.pop())
	vm.haltif(err)
	vm.haltif(vm.heap.Store(addr, index, vm.pop()))
}

// Symbol   Name    Function
// ]        index   pop an address and an index, push them paired for @ or !
func (vm *VM) index() {
	b, a := vm.pop(), vm.pop()
	r, err := vm.heap.NewIndex(a, b)
	vm.haltif(err)
	vm.push(r)
}

// Symbol   Name    Function
// {}       table   push a new empty table
func (vm *VM) newTable() { vm.pushNew(vm.heap.NewTable()) }

// Symbol   Name    Function
// []       array   push a new empty array
func (vm *VM) newArray() { vm.pushNew(vm.heap.NewArray()) }

// Symbol   Name    Function
// #{}      hash    push a new empty hash
func (vm *VM) newHash() { vm.pushNew(vm.heap.NewHash()) }

// Name    Function
// stack   push a new empty stack object
func (vm *VM) makeStack() { vm.pushNew(vm.heap.NewStack("stack")) }

func (vm *VM) pushNew(r object.Ref, err error) {
	vm.haltif(err)
	vm.push(r)
}

// Name   Function
// gc     collect garbage now
func (vm *VM) collect() { vm.heap.Collect() }

// Name   Function
// heap   push the number of live heap objects
func (vm *VM) heapLive() { vm.pushNumber(float64(vm.heap.Stats().Live)) }

//// Output

// Symbol   Name    Function
// .        print   pop top of stack and print it followed by a space
func (vm *VM) dot() {
	vm.haltif(vm.heap.Print(vm.out, vm.pop()))
	vm.writeString(" ")
}

// Name    Function
// emit    pop top of stack and write it as a rune
func (vm *VM) emit() { vm.writeRune(rune(vm.popInt("emit"))) }

// Name    Function
// cr      write a line feed
func (vm *VM) cr() { vm.writeString("\n") }

// Name    Function
// space   write a space
func (vm *VM) space() { vm.writeString(" ") }

// Name    Function
// type    pop a string and write it
func (vm *VM) typeString() {
	s, err := vm.heap.String(vm.pop())
	vm.haltif(err)
	vm.writeString(s)
}

// Name    Function
// words   list the defined word names
func (vm *VM) listWords() {
	first := true
	vm.haltif(vm.heap.Pairs(vm.words, func(key, _ object.Ref) {
		if !first {
			vm.writeString(" ")
		}
		first = false
		name, err := vm.heap.String(key)
		vm.haltif(err)
		vm.writeString(name)
	}))
	vm.writeString("\n")
}
