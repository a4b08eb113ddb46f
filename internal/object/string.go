package object

import "bytes"

// String is an immutable byte string.
type String struct {
	B []byte
}

// Kind returns KindString.
func (*String) Kind() Kind { return KindString }

// NewString allocates a String holding a copy of s.
func (h *Heap) NewString(s string) (Ref, error) {
	return h.Alloc(&String{B: []byte(s)})
}

// String returns the content of a String ref.
func (h *Heap) String(r Ref) (string, error) {
	s, err := As[*String](h, r)
	if err != nil {
		return "", err
	}
	return string(s.B), nil
}

func (s *String) finalize() { s.B = nil }

func (s *String) compare(other Object) int {
	return bytes.Compare(s.B, other.(*String).B)
}

func (s *String) add(h *Heap, other Ref) (Ref, error) {
	o, ok := h.peek(other).(*String)
	if !ok {
		return Ref{}, errUnsupported
	}
	b := make([]byte, 0, len(s.B)+len(o.B))
	b = append(b, s.B...)
	b = append(b, o.B...)
	return h.Alloc(&String{B: b})
}

// sub compares lexically, yielding -1, 0 or 1.
func (s *String) sub(h *Heap, other Ref) (Ref, error) {
	o, ok := h.peek(other).(*String)
	if !ok {
		return Ref{}, errUnsupported
	}
	return h.NewNumber(float64(bytes.Compare(s.B, o.B)))
}

// fetch returns the length when unindexed, otherwise the byte code at a
// numeric index; past the end is nil.
func (s *String) fetch(h *Heap, index Ref) (Ref, error) {
	if index.IsNil() {
		return h.NewNumber(float64(len(s.B)))
	}
	if h.KindOf(index) != KindNumber {
		return Ref{}, errUnsupported
	}
	i, err := h.Int("@", index)
	if err != nil {
		return Ref{}, err
	}
	if i < 0 || i >= len(s.B) {
		return Ref{}, nil
	}
	return h.NewNumber(float64(s.B[i]))
}

func (s *String) print(p *printState, _ Ref) error {
	if p.depth > 0 {
		p.quote(s.B)
	} else {
		p.Write(s.B)
	}
	return nil
}
