package object

import "fmt"

// Kind discriminates the closed set of object variants a Heap holds.
type Kind uint8

// Object kinds; KindNil is the kind of the nil Ref.
const (
	KindNil Kind = iota
	KindNumber
	KindString
	KindTable
	KindArray
	KindHash
	KindStack
	KindWord
	KindIndex
	KindFrame
	KindMarker
	KindLoop

	kindMax
)

var kindNames = [kindMax]string{
	"null",
	"number",
	"string",
	"table",
	"array",
	"hash",
	"stack",
	"word",
	"index",
	"frame",
	"marker",
	"loop",
}

func (k Kind) String() string {
	if k < kindMax {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Object is implemented by every value stored in a Heap slot.
//
// Behaviour beyond Kind is optional; a kind supports an operation exactly
// when it implements the matching unexported interface below. Dispatch
// through the Heap turns a missing implementation into a TypeError.
type Object interface {
	Kind() Kind
}

type tracer interface {
	trace(visit func(Ref))
}

type finalizer interface {
	finalize()
}

type comparer interface {
	compare(other Object) int
}

type fetcher interface {
	fetch(h *Heap, index Ref) (Ref, error)
}

type storer interface {
	store(h *Heap, index, value Ref) error
}

type adder interface {
	add(h *Heap, other Ref) (Ref, error)
}

type subber interface {
	sub(h *Heap, other Ref) (Ref, error)
}

type printer interface {
	print(p *printState, self Ref) error
}
