package main

import (
	"github.com/jcorbin/objforth/internal/object"
)

// execute runs word w to completion. Colon definitions are threaded through
// step until the frame pushed for them returns.
func (vm *VM) execute(w object.Ref) {
	word := vm.word(w)
	if word.Code != codeColon {
		vm.invoke(w, word)
		return
	}
	depth := vm.rs.Len()
	vm.call(w, word)
	for vm.rs.Len() > depth {
		vm.haltif(vm.ctx.Err())
		release := vm.heap.Hold()
		vm.step()
		release()
	}
}

func (vm *VM) step() {
	if vm.ip < 0 || vm.ip >= len(vm.body) {
		vm.halt(codeError{vm.wordName(vm.running), vm.ip, "ran off the end"})
	}
	cell := vm.body[vm.ip]
	if cell.Kind != object.CellCall {
		vm.halt(codeError{vm.wordName(vm.running), vm.ip, "operand in call position"})
	}
	if vm.logfn != nil {
		vm.logf("exec", "%v @%v %v", vm.wordName(vm.running), vm.ip, vm.wordName(cell.Ref))
	}
	vm.ip++
	vm.invoke(cell.Ref, vm.word(cell.Ref))
}

func (vm *VM) invoke(w object.Ref, word *object.Word) {
	switch code := word.Code; code {
	case codeColon:
		vm.call(w, word)
	case codeConstant:
		vm.push(word.Value)
	case codeVariable:
		vm.push(w)
	default:
		if int(code) >= len(vm.codes) || vm.codes[code] == nil {
			vm.halt(codeError{word.Name, -1, "invalid primitive code"})
		}
		release := vm.heap.Hold()
		vm.codes[code](vm)
		release()
	}
}

func (vm *VM) call(w object.Ref, word *object.Word) {
	vm.pushFrame(vm.running, vm.ip)
	vm.running, vm.body, vm.ip = w, word.Body, 0
}

// operand consumes the cell following the running runtime word.
func (vm *VM) operand(want object.CellKind) object.Cell {
	if vm.ip >= len(vm.body) {
		vm.halt(codeError{vm.wordName(vm.running), vm.ip, "missing operand"})
	}
	cell := vm.body[vm.ip]
	if cell.Kind != want {
		vm.halt(codeError{vm.wordName(vm.running), vm.ip, "invalid operand"})
	}
	vm.ip++
	return cell
}

func (vm *VM) branch() {
	cell := vm.operand(object.CellNum)
	vm.ip += int(cell.Num) - 1
}

//// Runtime words, compiled by the control structures and literals.

// Name       Function
// (lit)      push the number compiled in the following cell
func (vm *VM) runLit() { vm.pushNumber(vm.operand(object.CellNum).Num) }

// Name       Function
// (obj)      push the object compiled in the following cell
func (vm *VM) runObj() { vm.push(vm.operand(object.CellObj).Ref) }

// Name       Function
// (set)      pop top of stack into the value of the following word
func (vm *VM) runSet() {
	w := vm.word(vm.operand(object.CellObj).Ref)
	w.Value = vm.pop()
}

// Name       Function
// (branch)   jump by the offset compiled in the following cell
func (vm *VM) runBranch() { vm.branch() }

// Name       Function
// (zbranch)  pop top of stack, jump by the following offset if it is false
func (vm *VM) runZBranch() {
	if !vm.heap.Truthy(vm.pop()) {
		vm.branch()
	} else {
		vm.ip++
	}
}

// Name       Function
// (do)       pop start and limit, entering a counted loop, or jump past it
// by the following offset when it would not run
func (vm *VM) runDo() {
	start := vm.popNumber()
	limit := vm.popNumber()
	if start >= limit {
		vm.branch()
		return
	}
	vm.pushLoop(start, limit)
	vm.ip++
}

// Name       Function
// (loop)     step the innermost loop index by 1, jumping back by the
// following offset while it remains below the limit
func (vm *VM) runLoop() { vm.stepLoop(1) }

// Name       Function
// (+loop)    pop top of stack and step the innermost loop by it, jumping
// back while the index remains below the limit; a negative step moves
// the index back without ending the loop
func (vm *VM) runPlusLoop() { vm.stepLoop(vm.popNumber()) }

func (vm *VM) stepLoop(by float64) {
	l := vm.loopAt(0)
	l.Index += by
	if l.Index < l.Limit {
		vm.branch()
		return
	}
	vm.dropLoop()
	vm.ip++
}

// Name       Function
// (exit)     return from the running definition
func (vm *VM) runExit() {
	f := vm.popFrame()
	vm.ls.Truncate(f.Loops)
	vm.running, vm.ip, vm.body = f.Caller, f.IP, nil
	if !f.Caller.IsNil() {
		vm.body = vm.word(f.Caller).Body
	}
}

// Name       Function
// i          push the index of the innermost loop
func (vm *VM) loopIndex() { vm.pushNumber(vm.loopAt(0).Index) }

// Name       Function
// j          push the index of the next outer loop
func (vm *VM) outerIndex() { vm.pushNumber(vm.loopAt(1).Index) }
