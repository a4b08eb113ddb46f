package object

import (
	"fmt"
	"math/bits"
)

// DefaultCapacity is the slot count used when NewHeap is given none.
const DefaultCapacity = 8192

// Ref is a generation checked handle to a Heap slot. The zero Ref is nil.
type Ref struct {
	slot uint32 // slot index + 1
	gen  uint32
}

// IsNil returns true for the zero Ref.
func (r Ref) IsNil() bool { return r.slot == 0 }

// Slot returns the slot index of r, or -1 for nil.
func (r Ref) Slot() int { return int(r.slot) - 1 }

func (r Ref) String() string {
	if r.slot == 0 {
		return "nil"
	}
	return fmt.Sprintf("#%v.%v", r.slot-1, r.gen)
}

// RootFunc reports every Ref that a root source keeps alive.
type RootFunc func(visit func(Ref))

// Stats describes heap occupancy.
type Stats struct {
	Capacity    int
	Live        int
	Free        int
	Collections int
}

// Heap is a fixed capacity object arena with a mark-sweep collector.
//
// Slot occupancy is tracked in a bitmap; free slots are kept on a stack of
// indices. When the free stack runs dry Alloc collects, and fails with
// ErrOutOfMemory when collection frees nothing. The heap never grows.
type Heap struct {
	slots []slot
	inuse []uint64
	snap  []uint64
	free  []uint32
	gray  []uint32

	roots []RootFunc

	hold    []Ref
	holding int

	stress      bool
	collections int

	logfn func(mess string, args ...interface{})
}

type slot struct {
	obj Object
	gen uint32
}

// NewHeap creates a heap with room for capacity objects.
func NewHeap(capacity int) *Heap {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	words := (capacity + 63) / 64
	h := &Heap{
		slots: make([]slot, capacity),
		inuse: make([]uint64, words),
		snap:  make([]uint64, words),
		free:  make([]uint32, capacity),
	}
	// lowest slots are handed out first
	for i := range h.free {
		h.free[i] = uint32(capacity - 1 - i)
	}
	return h
}

// SetStress enables collection before every allocation, which surfaces
// missing roots deterministically.
func (h *Heap) SetStress(stress bool) { h.stress = stress }

// SetLogf installs a trace logging function; nil disables logging.
func (h *Heap) SetLogf(logfn func(mess string, args ...interface{})) { h.logfn = logfn }

func (h *Heap) logf(mess string, args ...interface{}) {
	if h.logfn != nil {
		h.logfn(mess, args...)
	}
}

// AddRoot registers a root source consulted by every collection.
func (h *Heap) AddRoot(fn RootFunc) {
	h.roots = append(h.roots, fn)
}

// Capacity returns the fixed slot count.
func (h *Heap) Capacity() int { return len(h.slots) }

// Stats returns current occupancy figures.
func (h *Heap) Stats() Stats {
	return Stats{
		Capacity:    len(h.slots),
		Live:        len(h.slots) - len(h.free),
		Free:        len(h.free),
		Collections: h.collections,
	}
}

// Alloc places obj into a free slot, collecting first if none is free.
// While a hold scope is open the new Ref is held until that scope ends.
func (h *Heap) Alloc(obj Object) (Ref, error) {
	if obj == nil {
		return Ref{}, fmt.Errorf("cannot allocate a nil object")
	}
	if h.stress || len(h.free) == 0 {
		h.Collect()
	}
	n := len(h.free)
	if n == 0 {
		return Ref{}, ErrOutOfMemory
	}

	i := h.free[n-1]
	h.free = h.free[:n-1]

	w, bit := i/64, uint64(1)<<(i%64)
	if h.inuse[w]&bit != 0 {
		return Ref{}, fmt.Errorf("slot %v allocated while in use", i)
	}
	h.inuse[w] |= bit

	s := &h.slots[i]
	s.obj = obj
	r := Ref{slot: i + 1, gen: s.gen}
	if h.holding > 0 {
		h.hold = append(h.hold, r)
	}
	return r, nil
}

// Get dereferences r; nil yields a nil Object. A Ref to a freed or reused
// slot fails with UseAfterFreeError.
func (h *Heap) Get(r Ref) (Object, error) {
	if r.slot == 0 {
		return nil, nil
	}
	i := int(r.slot - 1)
	if i >= len(h.slots) {
		return nil, UseAfterFreeError{r}
	}
	s := &h.slots[i]
	if s.obj == nil || s.gen != r.gen {
		return nil, UseAfterFreeError{r}
	}
	return s.obj, nil
}

// KindOf returns the kind of r, KindNil for nil or dangling refs.
func (h *Heap) KindOf(r Ref) Kind {
	obj, err := h.Get(r)
	if err != nil || obj == nil {
		return KindNil
	}
	return obj.Kind()
}

// Live returns true if r names an occupied slot of matching generation.
func (h *Heap) Live(r Ref) bool {
	obj, err := h.Get(r)
	return err == nil && obj != nil
}

// As dereferences r and asserts its concrete type.
func As[T Object](h *Heap, r Ref) (T, error) {
	var zero T
	obj, err := h.Get(r)
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		got := KindNil
		if obj != nil {
			got = obj.Kind()
		}
		return zero, KindError{Want: zero.Kind(), Got: got}
	}
	return t, nil
}

// Trace calls visit on every Ref that r's object directly references.
func (h *Heap) Trace(r Ref, visit func(Ref)) error {
	obj, err := h.Get(r)
	if err != nil {
		return err
	}
	if t, ok := obj.(tracer); ok {
		t.trace(visit)
	}
	return nil
}

func popcount(words []uint64) (n int) {
	for _, w := range words {
		n += bits.OnesCount64(w)
	}
	return n
}
