package object

// Index carries an address and an index between `]` and the `@` or `!`
// that consumes it. It is never stored in a container.
type Index struct {
	Addr  Ref
	Index Ref
}

// Kind returns KindIndex.
func (*Index) Kind() Kind { return KindIndex }

// NewIndex pairs addr with index; a nil index yields addr itself.
func (h *Heap) NewIndex(addr, index Ref) (Ref, error) {
	if index.IsNil() {
		return addr, nil
	}
	return h.Alloc(&Index{Addr: addr, Index: index})
}

// Unindex splits an Index ref into its address and index; any other ref is
// returned as an unindexed address.
func (h *Heap) Unindex(r Ref) (addr, index Ref, err error) {
	obj, err := h.Get(r)
	if err != nil {
		return Ref{}, Ref{}, err
	}
	if ix, ok := obj.(*Index); ok {
		return ix.Addr, ix.Index, nil
	}
	return r, Ref{}, nil
}

func (ix *Index) trace(visit func(Ref)) {
	visit(ix.Addr)
	visit(ix.Index)
}

func (ix *Index) print(p *printState, _ Ref) error {
	p.WriteString("<index ")
	if err := p.elem(ix.Addr); err != nil {
		return err
	}
	p.WriteString(" ")
	if err := p.elem(ix.Index); err != nil {
		return err
	}
	p.WriteString(">")
	return nil
}
