package object

// Add dispatches `+` on the kind of a.
func (h *Heap) Add(a, b Ref) (Ref, error) {
	if err := h.check(a, b); err != nil {
		return Ref{}, err
	}
	if ad, ok := h.peek(a).(adder); ok {
		r, err := ad.add(h, b)
		if err != errUnsupported {
			return r, err
		}
	}
	return Ref{}, h.typeError("+", a, b)
}

// Sub dispatches `-` on the kind of a.
func (h *Heap) Sub(a, b Ref) (Ref, error) {
	if err := h.check(a, b); err != nil {
		return Ref{}, err
	}
	if sb, ok := h.peek(a).(subber); ok {
		r, err := sb.sub(h, b)
		if err != errUnsupported {
			return r, err
		}
	}
	return Ref{}, h.typeError("-", a, b)
}

// Fetch dispatches `@` on the kind of addr; a nil index is an unindexed
// fetch.
func (h *Heap) Fetch(addr, index Ref) (Ref, error) {
	if err := h.check(addr, index); err != nil {
		return Ref{}, err
	}
	if f, ok := h.peek(addr).(fetcher); ok {
		r, err := f.fetch(h, index)
		if err != errUnsupported {
			return r, err
		}
	}
	if index.IsNil() {
		return Ref{}, h.typeError("@", addr)
	}
	return Ref{}, h.typeError("@", addr, index)
}

// Store dispatches `!` on the kind of addr. Index values are rejected.
func (h *Heap) Store(addr, index, value Ref) error {
	if err := h.check(addr, index, value); err != nil {
		return err
	}
	if k := h.KindOf(value); k == KindIndex {
		return TypeError{Op: "!", Kinds: []Kind{h.KindOf(addr), k}, Reason: "an index cannot be stored"}
	}
	if s, ok := h.peek(addr).(storer); ok {
		err := s.store(h, index, value)
		if err != errUnsupported {
			return err
		}
	}
	if index.IsNil() {
		return h.typeError("!", addr)
	}
	return h.typeError("!", addr, index)
}

// Compare orders a and b: by value for two Numbers or two Strings,
// otherwise by kind then slot identity.
func (h *Heap) Compare(a, b Ref) (int, error) {
	if err := h.check(a, b); err != nil {
		return 0, err
	}
	oa, ob := h.peek(a), h.peek(b)
	ka, kb := h.KindOf(a), h.KindOf(b)
	if ka == kb && oa != nil {
		if c, ok := oa.(comparer); ok {
			return c.compare(ob), nil
		}
	}
	switch {
	case ka < kb:
		return -1, nil
	case ka > kb:
		return 1, nil
	case a.slot < b.slot:
		return -1, nil
	case a.slot > b.slot:
		return 1, nil
	}
	return 0, nil
}

// Truthy returns false only for nil and the Number 0.
func (h *Heap) Truthy(r Ref) bool {
	if r.IsNil() {
		return false
	}
	if n, ok := h.peek(r).(*Number); ok {
		return n.N != 0
	}
	return true
}
