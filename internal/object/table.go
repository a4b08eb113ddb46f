package object

import "fmt"

// Table is the hybrid container: numeric indices address its array part,
// string indices its hash part.
type Table struct {
	Array Ref
	Hash  Ref
}

// Kind returns KindTable.
func (*Table) Kind() Kind { return KindTable }

// NewTable allocates a Table together with its array and hash parts.
func (h *Heap) NewTable() (Ref, error) {
	return h.build(func() (Ref, error) {
		arr, err := h.NewArray()
		if err != nil {
			return Ref{}, err
		}
		hash, err := h.NewHash()
		if err != nil {
			return Ref{}, err
		}
		return h.Alloc(&Table{Array: arr, Hash: hash})
	})
}

func (t *Table) trace(visit func(Ref)) {
	visit(t.Array)
	visit(t.Hash)
}

func (t *Table) parts(h *Heap) (*Array, *Hash) {
	a, _ := h.peek(t.Array).(*Array)
	hs, _ := h.peek(t.Hash).(*Hash)
	return a, hs
}

func (t *Table) fetch(h *Heap, index Ref) (Ref, error) {
	a, hs := t.parts(h)
	switch h.KindOf(index) {
	case KindNil:
		return h.NewNumber(float64(len(a.Elems)))
	case KindNumber:
		return a.fetch(h, index)
	case KindString:
		return hs.fetch(h, index)
	}
	return Ref{}, errUnsupported
}

func (t *Table) store(h *Heap, index, value Ref) error {
	a, hs := t.parts(h)
	switch h.KindOf(index) {
	case KindNil:
		a.Elems = append(a.Elems, value)
		return nil
	case KindNumber:
		return a.store(h, index, value)
	case KindString:
		return hs.store(h, index, value)
	}
	return errUnsupported
}

func (t *Table) print(p *printState, _ Ref) error {
	a, hs := t.parts(p.h)
	p.WriteString("{")
	for _, r := range a.Elems {
		p.WriteString(" ")
		if err := p.elem(r); err != nil {
			return err
		}
	}
	if err := hs.printPairs(p); err != nil {
		return err
	}
	p.WriteString(" }")
	return nil
}

// LookupString finds key in the hash part of a Table or Hash without
// allocating.
func (h *Heap) LookupString(container Ref, key string) (Ref, bool, error) {
	hs, err := h.hashOf(container)
	if err != nil {
		return Ref{}, false, err
	}
	v, ok := hs.lookup(h, []byte(key))
	return v, ok, nil
}

// Pairs calls fn for each key/value pair in the hash part of a Table or
// Hash, in insertion order.
func (h *Heap) Pairs(container Ref, fn func(key, value Ref)) error {
	hs, err := h.hashOf(container)
	if err != nil {
		return err
	}
	for i := range hs.Keys {
		fn(hs.Keys[i], hs.Vals[i])
	}
	return nil
}

// Merge stores every hash pair of src into dst, replacing same-named keys.
func (h *Heap) Merge(dst, src Ref) error {
	into, err := h.hashOf(dst)
	if err != nil {
		return err
	}
	from, err := h.hashOf(src)
	if err != nil {
		return err
	}
	for i := range from.Keys {
		into.set(h, from.Keys[i], from.Vals[i])
	}
	return nil
}

func (h *Heap) hashOf(r Ref) (*Hash, error) {
	obj, err := h.Get(r)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *Hash:
		return o, nil
	case *Table:
		_, hs := o.parts(h)
		return hs, nil
	}
	return nil, fmt.Errorf("%v has no hash part", h.KindOf(r))
}
