package object

import "bytes"

// Hash maps String keys, compared by content, to values. Pairs keep their
// insertion order and are never removed.
type Hash struct {
	Keys []Ref
	Vals []Ref
}

// Kind returns KindHash.
func (*Hash) Kind() Kind { return KindHash }

// NewHash allocates an empty Hash.
func (h *Heap) NewHash() (Ref, error) {
	return h.Alloc(&Hash{})
}

func (hs *Hash) trace(visit func(Ref)) {
	for i := range hs.Keys {
		visit(hs.Keys[i])
		visit(hs.Vals[i])
	}
}

func (hs *Hash) finalize() {
	hs.Keys = nil
	hs.Vals = nil
}

func (hs *Hash) find(h *Heap, key []byte) int {
	for i, k := range hs.Keys {
		if s, ok := h.peek(k).(*String); ok && bytes.Equal(s.B, key) {
			return i
		}
	}
	return -1
}

func (hs *Hash) lookup(h *Heap, key []byte) (Ref, bool) {
	if i := hs.find(h, key); i >= 0 {
		return hs.Vals[i], true
	}
	return Ref{}, false
}

func (hs *Hash) set(h *Heap, key Ref, value Ref) {
	s := h.peek(key).(*String)
	if i := hs.find(h, s.B); i >= 0 {
		hs.Vals[i] = value
		return
	}
	hs.Keys = append(hs.Keys, key)
	hs.Vals = append(hs.Vals, value)
}

func hashKey(h *Heap, op string, index Ref) (*String, error) {
	s, ok := h.peek(index).(*String)
	if !ok {
		return nil, TypeError{Op: op, Kinds: []Kind{KindHash, h.KindOf(index)}, Reason: "hash key must be a string"}
	}
	return s, nil
}

func (hs *Hash) fetch(h *Heap, index Ref) (Ref, error) {
	if index.IsNil() {
		return h.NewNumber(float64(len(hs.Keys)))
	}
	s, err := hashKey(h, "@", index)
	if err != nil {
		return Ref{}, err
	}
	v, _ := hs.lookup(h, s.B)
	return v, nil
}

func (hs *Hash) store(h *Heap, index, value Ref) error {
	if _, err := hashKey(h, "!", index); err != nil {
		return err
	}
	hs.set(h, index, value)
	return nil
}

func (hs *Hash) printPairs(p *printState) error {
	for i := range hs.Keys {
		p.WriteString(" ")
		if err := p.elem(hs.Keys[i]); err != nil {
			return err
		}
		p.WriteString(": ")
		if err := p.elem(hs.Vals[i]); err != nil {
			return err
		}
	}
	return nil
}

func (hs *Hash) print(p *printState, _ Ref) error {
	p.WriteString("#{")
	if err := hs.printPairs(p); err != nil {
		return err
	}
	p.WriteString(" }")
	return nil
}
