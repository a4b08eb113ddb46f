package main

import (
	"github.com/jcorbin/objforth/internal/object"
)

// eval compiles src into an anonymous unit word, merges any definitions it
// made into the permanent dictionary, then runs it.
func (vm *VM) eval(src string) {
	defer vm.heap.Hold()()

	var err error
	vm.input, err = vm.heap.NewString(src)
	vm.haltif(err)
	vm.inputPos = 0
	vm.newWords, err = vm.heap.NewTable()
	vm.haltif(err)
	unit, err := vm.heap.NewWord("", codeColon)
	vm.haltif(err)
	vm.compiling = unit

	for {
		token, ok := vm.scanToken()
		if !ok {
			break
		}
		vm.compileToken(token)
	}
	if m, open := vm.peekMarker(); open {
		if m.Construct == object.MarkColon {
			vm.halt(CompileError{vm.wordName(vm.compiling), "unterminated definition"})
		}
		vm.halt(CompileError{"", "unterminated " + m.Construct.String()})
	}
	vm.compile(object.Call(vm.internal.exit))

	vm.haltif(vm.heap.Merge(vm.words, vm.newWords))
	vm.newWords = object.Ref{}
	vm.input = object.Ref{}
	vm.compiling = object.Ref{}

	vm.execute(unit)
	vm.flush()
}

func (vm *VM) compileToken(token string) {
	if w, defined := vm.lookup(token); defined {
		if word := vm.word(w); word.Immediate {
			vm.logf(">", "%v immediate", token)
			vm.execute(w)
		} else {
			vm.logf(">", "%v call", token)
			vm.compile(object.Call(w))
		}
		return
	}
	if n, isNum := parseNumber(token); isNum {
		vm.logf(">", "%v literal", token)
		vm.compile(object.Call(vm.internal.lit), object.Num(n))
		return
	}
	vm.halt(UndefinedWordError{token})
}

// lookup resolves name in the permanent dictionary, then among the words
// defined so far by the unit being compiled.
func (vm *VM) lookup(name string) (object.Ref, bool) {
	for _, dict := range [...]object.Ref{vm.words, vm.newWords} {
		if dict.IsNil() {
			continue
		}
		w, defined, err := vm.heap.LookupString(dict, name)
		vm.haltif(err)
		if defined {
			return w, true
		}
	}
	return object.Ref{}, false
}

func (vm *VM) mustLookup(name string) object.Ref {
	w, defined := vm.lookup(name)
	if !defined {
		vm.halt(UndefinedWordError{name})
	}
	return w
}

// define stores w under its name in dict.
func (vm *VM) define(dict, w object.Ref) {
	defer vm.heap.Hold()()
	vm.heap.Keep(w)
	key, err := vm.heap.NewString(vm.word(w).Name)
	vm.haltif(err)
	vm.haltif(vm.heap.Store(dict, key, w))
}

func (vm *VM) installWord(name string, code object.Code, value object.Ref) object.Ref {
	defer vm.heap.Hold()()
	vm.heap.Keep(value)
	w, err := vm.heap.NewWord(name, code)
	vm.haltif(err)
	vm.word(w).Value = value
	vm.define(vm.words, w)
	return w
}

func (vm *VM) installPrimitive(name string, prim Primitive, immediate bool) {
	code := object.Code(len(vm.codes))
	vm.codes = append(vm.codes, prim)
	vm.codeNames = append(vm.codeNames, name)
	w := vm.installWord(name, code, object.Ref{})
	vm.word(w).Immediate = immediate
}

// compile appends cells to the word under construction.
func (vm *VM) compile(cells ...object.Cell) {
	w := vm.word(vm.compiling)
	w.Body = append(w.Body, cells...)
}

// here is the offset of the next cell emitted.
func (vm *VM) here() int { return len(vm.word(vm.compiling).Body) }

// emitOffset emits a branch offset placeholder, returning its position.
func (vm *VM) emitOffset(runtime object.Ref) int {
	vm.compile(object.Call(runtime))
	at := vm.here()
	vm.compile(object.Num(0))
	return at
}

// resolve patches the forward branch placeholder at to land here.
func (vm *VM) resolve(at int) {
	body := vm.word(vm.compiling).Body
	if at < 0 || at >= len(body) || body[at].Kind != object.CellNum {
		vm.halt(codeError{vm.wordName(vm.compiling), at, "invalid branch placeholder"})
	}
	body[at].Num = float64(len(body) - at)
}

// emitBack emits a branch back to the offset mark.
func (vm *VM) emitBack(runtime object.Ref, mark int) {
	vm.compile(object.Call(runtime))
	vm.compile(object.Num(float64(mark - vm.here())))
}
