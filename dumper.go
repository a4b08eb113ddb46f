package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/objforth/internal/object"
)

type fmtBuf interface {
	io.Writer
	io.StringWriter
	WriteByte(c byte) error
}

type vmDumper struct {
	vm  *VM
	out io.Writer

	// also decompile the words of the permanent dictionary
	allWords bool
}

func (dump vmDumper) dump() {
	vm := dump.vm
	fmt.Fprintf(dump.out, "# VM Dump\n")
	if vm.heap == nil {
		fmt.Fprintf(dump.out, "  uninitialized\n")
		return
	}

	st := vm.heap.Stats()
	fmt.Fprintf(dump.out, "  heap: live:%v free:%v capacity:%v collections:%v holding:%v\n",
		st.Live, st.Free, st.Capacity, st.Collections, vm.heap.Holding())
	if !vm.running.IsNil() {
		fmt.Fprintf(dump.out, "  running: %v @%v\n", vm.wordName(vm.running), vm.ip)
	}
	if !vm.compiling.IsNil() {
		fmt.Fprintf(dump.out, "  compiling: %v\n", vm.decompile(vm.compiling))
	}

	for _, s := range []*object.Stack{vm.ds, vm.rs, vm.ls, vm.cs} {
		dump.dumpStack(s)
	}
	if dump.allWords {
		dump.dumpWords()
	}
}

func (dump vmDumper) dumpStack(s *object.Stack) {
	if s == nil {
		return
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "  %v:", s.Name)
	for _, r := range s.Elems {
		buf.WriteByte(' ')
		buf.WriteString(dump.vm.heap.Format(r))
	}
	buf.WriteByte('\n')
	io.WriteString(dump.out, buf.String())
}

func (dump vmDumper) dumpWords() {
	fmt.Fprintf(dump.out, "# Words\n")
	dump.vm.heap.Pairs(dump.vm.words, func(_, w object.Ref) {
		fmt.Fprintf(dump.out, "  %v\n", dump.vm.decompile(w))
	})
}

// decompile renders a word back into source form, like `: double dup + ;`.
// Runtime words show their operand in parentheses, like `(branch)(+3)`.
func (vm *VM) decompile(w object.Ref) string {
	word, err := vm.heap.Word(w)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	var buf strings.Builder
	switch code := word.Code; {
	case code == codeConstant:
		fmt.Fprintf(&buf, "%v constant %v", vm.heap.Format(word.Value), word.Name)
	case code == codeVariable:
		fmt.Fprintf(&buf, "variable %v", word.Name)
		if !word.Value.IsNil() {
			fmt.Fprintf(&buf, " \\ %v", vm.heap.Format(word.Value))
		}
	case code >= codePrimitive:
		fmt.Fprintf(&buf, "primitive %v", word.Name)
	default:
		buf.WriteString(":")
		if word.Name != "" {
			buf.WriteByte(' ')
			buf.WriteString(word.Name)
		}
		vm.formatBody(&buf, word.Body)
		buf.WriteString(" ;")
	}
	if word.Immediate {
		buf.WriteString(" immediate")
	}
	return buf.String()
}

func (vm *VM) formatBody(buf fmtBuf, body []object.Cell) {
	for i := 0; i < len(body); i++ {
		cell := body[i]
		if cell.Kind == object.CellCall && cell.Ref == vm.internal.exit && i == len(body)-1 {
			break
		}
		buf.WriteByte(' ')
		i += vm.formatCell(buf, body[i:])
	}
}

// formatCell writes the cell at the head of cells, returning how many
// operand cells following it were consumed.
func (vm *VM) formatCell(buf fmtBuf, cells []object.Cell) int {
	cell := cells[0]
	switch cell.Kind {
	case object.CellNum:
		fmt.Fprintf(buf, "(%v)", object.FormatNumber(cell.Num))
		return 0
	case object.CellObj:
		fmt.Fprintf(buf, "(%v)", vm.heap.Format(cell.Ref))
		return 0
	}

	var operand object.Cell
	hasOperand := len(cells) > 1 && cells[1].Kind != object.CellCall
	if hasOperand {
		operand = cells[1]
	}
	switch {
	case cell.Ref == vm.internal.lit && hasOperand:
		buf.WriteString(object.FormatNumber(operand.Num))
		return 1
	case cell.Ref == vm.internal.obj && hasOperand:
		if s, err := vm.heap.String(operand.Ref); err == nil {
			fmt.Fprintf(buf, "\" %v\"", s)
		} else {
			buf.WriteString(vm.heap.Format(operand.Ref))
		}
		return 1
	}

	buf.WriteString(vm.wordName(cell.Ref))
	if !hasOperand {
		return 0
	}
	switch operand.Kind {
	case object.CellNum:
		if operand.Num >= 0 {
			buf.WriteString("(+")
		} else {
			buf.WriteString("(")
		}
		buf.WriteString(object.FormatNumber(operand.Num))
		buf.WriteByte(')')
	case object.CellObj:
		fmt.Fprintf(buf, "(%v)", vm.wordName(operand.Ref))
	}
	return 1
}
