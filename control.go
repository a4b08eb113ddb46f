package main

import (
	"github.com/jcorbin/objforth/internal/object"
)

//// Defining words

// Symbol   Name     Function
// :        define   read the next token as a name, and compile the rest of
// the definition into a new word under that name
func (vm *VM) colon() {
	if vm.cs.Len() > 0 {
		m, _ := vm.peekMarker()
		vm.halt(CompileError{":", "inside open " + m.Construct.String()})
	}
	name, ok := vm.scanToken()
	if !ok {
		vm.halt(CompileError{":", "missing name"})
	}
	w, err := vm.heap.NewWord(name, codeColon)
	vm.haltif(err)
	vm.logf(">", ": %v", name)
	vm.defs = append(vm.defs, definition{outer: vm.compiling})
	vm.compiling = w
	vm.pushMarker(object.MarkColon, 0)
}

// Symbol   Name     Function
// ;        end      finish the current definition, making it available
func (vm *VM) semicolon() {
	vm.popMarker(";", object.MarkColon)
	vm.compile(object.Call(vm.internal.exit))

	w := vm.compiling
	vm.last = w
	n := len(vm.defs) - 1
	vm.compiling, vm.defs = vm.defs[n].outer, vm.defs[:n]
	vm.define(vm.newWords, w)
	vm.logf(">", "; %v", vm.wordName(w))
}

// Name        Function
// immediate   mark the last defined word to run at compile time
func (vm *VM) immediate() {
	if vm.last.IsNil() {
		vm.halt(CompileError{"immediate", "no word defined"})
	}
	vm.word(vm.last).Immediate = true
}

// Name        Function
// recurse     compile a call to the word being defined
func (vm *VM) recurse() { vm.compile(object.Call(vm.compiling)) }

func (vm *VM) defineValue(token string, code object.Code) object.Ref {
	name, ok := vm.scanToken()
	if !ok {
		vm.halt(CompileError{token, "missing name"})
	}
	w, err := vm.heap.NewWord(name, code)
	vm.haltif(err)
	vm.define(vm.newWords, w)
	vm.last = w
	return w
}

// Name        Function
// constant    pop top of stack, at run time, as the value of a new word
// that pushes it
func (vm *VM) constant() {
	w := vm.defineValue("constant", codeConstant)
	vm.compile(object.Call(vm.internal.set), object.Obj(w))
}

// Name        Function
// var         pop top of stack, at run time, as the initial value of a new
// variable; use @ and ! on the variable word to read or modify it
func (vm *VM) variableInit() {
	w := vm.defineValue("var", codeVariable)
	vm.compile(object.Call(vm.internal.set), object.Obj(w))
}

// Name        Function
// variable    define a new variable whose value starts as null
func (vm *VM) variable() { vm.defineValue("variable", codeVariable) }

//// Conditionals

// Name   Function
// if     compile a conditional forward branch, resolved by else or then
func (vm *VM) compileIf() {
	vm.pushMarker(object.MarkIf, vm.emitOffset(vm.internal.zbranch))
}

// Name   Function
// else   branch over the rest of the conditional, resolving its if
func (vm *VM) compileElse() {
	at := vm.popMarker("else", object.MarkIf)
	next := vm.emitOffset(vm.internal.branch)
	vm.resolve(at)
	vm.pushMarker(object.MarkIf, next)
}

// Name   Function
// then   end a conditional
func (vm *VM) compileThen() { vm.resolve(vm.popMarker("then", object.MarkIf)) }

//// Counted loops

// Name    Function
// do      begin a counted loop, taking limit and start from the stack
func (vm *VM) compileDo() {
	vm.pushMarker(object.MarkDo, vm.emitOffset(vm.internal.do))
}

// Name    Function
// loop    end a counted loop, stepping by one
func (vm *VM) compileLoop() { vm.endLoop("loop", vm.internal.loop) }

// Name    Function
// +loop   end a counted loop, stepping by the top of stack
func (vm *VM) compilePlusLoop() { vm.endLoop("+loop", vm.internal.plus) }

func (vm *VM) endLoop(token string, runtime object.Ref) {
	at := vm.popMarker(token, object.MarkDo)
	vm.emitBack(runtime, at+1)
	vm.resolve(at)
}

//// Indefinite loops

// Name     Function
// begin    mark the start of an indefinite loop
func (vm *VM) compileBegin() { vm.pushMarker(object.MarkBegin, vm.here()) }

// Name     Function
// until    pop top of stack, looping back to begin while it is false
func (vm *VM) compileUntil() {
	vm.emitBack(vm.internal.zbranch, vm.popMarker("until", object.MarkBegin))
}

// Name     Function
// again    loop back to begin unconditionally
func (vm *VM) compileAgain() {
	vm.emitBack(vm.internal.branch, vm.popMarker("again", object.MarkBegin))
}

// Name     Function
// while    pop top of stack, leaving the loop when it is false
func (vm *VM) compileWhile() {
	vm.pushMarker(object.MarkWhile, vm.emitOffset(vm.internal.zbranch))
}

// Name     Function
// repeat   loop back to begin, resolving while
func (vm *VM) compileRepeat() {
	at := vm.popMarker("repeat", object.MarkWhile)
	vm.emitBack(vm.internal.branch, vm.popMarker("repeat", object.MarkBegin))
	vm.resolve(at)
}

//// Comments and literals

// Symbol   Name           Function
// (        comment        skip source through the next )
func (vm *VM) comment() {
	if _, ok := vm.readUntil(')'); !ok {
		vm.halt(CompileError{"(", "unterminated comment"})
	}
}

// Symbol   Name           Function
// \        line comment   skip source through the end of the line
func (vm *VM) lineComment() { vm.readUntil('\n') }

// Symbol   Name           Function
// "        string         compile a string literal ending at the next "
func (vm *VM) stringLit() {
	vm.skipSpace()
	s, ok := vm.readUntil('"')
	if !ok {
		vm.halt(CompileError{`"`, "unterminated string"})
	}
	r, err := vm.heap.NewString(s)
	vm.haltif(err)
	vm.compile(object.Call(vm.internal.obj), object.Obj(r))
}

// Name   Function
// see    decompile the word named by the next token
func (vm *VM) see() {
	name, ok := vm.scanToken()
	if !ok {
		vm.halt(CompileError{"see", "missing name"})
	}
	w, defined := vm.lookup(name)
	if !defined {
		vm.halt(UndefinedWordError{name})
	}
	vm.writeString(vm.decompile(w))
	vm.writeString("\n")
}
