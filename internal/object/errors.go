package object

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfMemory is returned by Alloc when collection frees no slot.
var ErrOutOfMemory = errors.New("out of memory")

// UseAfterFreeError reports a dereference of a Ref whose slot has been
// freed, or reused by a later allocation.
type UseAfterFreeError struct {
	Ref Ref
}

func (err UseAfterFreeError) Error() string {
	return fmt.Sprintf("use after free of %v", err.Ref)
}

// StackUnderflowError reports a pop from an empty stack.
type StackUnderflowError struct {
	Stack string
}

func (err StackUnderflowError) Error() string {
	if err.Stack == "" {
		return "stack underflow"
	}
	return fmt.Sprintf("%s underflow", err.Stack)
}

// TypeError reports an operation that the operand kinds do not support.
type TypeError struct {
	Op     string
	Kinds  []Kind
	Reason string
}

func (err TypeError) Error() string {
	var sb strings.Builder
	for _, k := range err.Kinds {
		sb.WriteString(k.String())
		sb.WriteByte(' ')
	}
	sb.WriteString(err.Op)
	if err.Reason != "" {
		sb.WriteString(": ")
		sb.WriteString(err.Reason)
	} else {
		sb.WriteString(" not supported")
	}
	return sb.String()
}

// KindError reports an object of an unexpected kind.
type KindError struct {
	Want, Got Kind
}

func (err KindError) Error() string {
	return fmt.Sprintf("expected %v, got %v", err.Want, err.Got)
}

func (h *Heap) typeError(op string, refs ...Ref) TypeError {
	kinds := make([]Kind, len(refs))
	for i, r := range refs {
		kinds[i] = h.KindOf(r)
	}
	return TypeError{Op: op, Kinds: kinds}
}
