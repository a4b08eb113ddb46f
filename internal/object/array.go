package object

import "fmt"

// MaxArrayLen bounds how far a single store may grow an Array.
const MaxArrayLen = 1 << 20

// Array is a dense, 0-based sequence grown by stores past its end.
type Array struct {
	Elems []Ref
}

// Kind returns KindArray.
func (*Array) Kind() Kind { return KindArray }

// NewArray allocates an empty Array.
func (h *Heap) NewArray() (Ref, error) {
	return h.Alloc(&Array{})
}

func (a *Array) trace(visit func(Ref)) {
	for _, r := range a.Elems {
		visit(r)
	}
}

func (a *Array) finalize() { a.Elems = nil }

func (a *Array) fetch(h *Heap, index Ref) (Ref, error) {
	if index.IsNil() {
		return h.NewNumber(float64(len(a.Elems)))
	}
	i, err := arrayIndex(h, "@", index)
	if err != nil {
		return Ref{}, err
	}
	return a.at(i), nil
}

func (a *Array) at(i int) Ref {
	if i < len(a.Elems) {
		return a.Elems[i]
	}
	return Ref{}
}

func (a *Array) store(h *Heap, index, value Ref) error {
	if index.IsNil() {
		a.Elems = append(a.Elems, value)
		return nil
	}
	i, err := arrayIndex(h, "!", index)
	if err != nil {
		return err
	}
	return a.set(i, value)
}

func (a *Array) set(i int, value Ref) error {
	if i >= MaxArrayLen {
		return TypeError{Op: "!", Kinds: []Kind{KindArray}, Reason: fmt.Sprintf("index %v exceeds array limit", i)}
	}
	if i >= len(a.Elems) {
		if i < cap(a.Elems) {
			a.Elems = a.Elems[:i+1]
		} else {
			elems := make([]Ref, i+1, 2*(i+1))
			copy(elems, a.Elems)
			a.Elems = elems
		}
	}
	a.Elems[i] = value
	return nil
}

func arrayIndex(h *Heap, op string, index Ref) (int, error) {
	if k := h.KindOf(index); k != KindNumber {
		return 0, TypeError{Op: op, Kinds: []Kind{KindArray, k}, Reason: "array index must be a number"}
	}
	i, err := h.Int(op, index)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, TypeError{Op: op, Kinds: []Kind{KindArray, KindNumber}, Reason: fmt.Sprintf("negative index %v", i)}
	}
	return i, nil
}

func (a *Array) print(p *printState, _ Ref) error {
	p.WriteString("[")
	for _, r := range a.Elems {
		p.WriteString(" ")
		if err := p.elem(r); err != nil {
			return err
		}
	}
	p.WriteString(" ]")
	return nil
}
