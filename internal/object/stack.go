package object

// Stack is a growable LIFO of refs. Fetching pops and storing pushes.
type Stack struct {
	Name  string
	Elems []Ref
}

// Kind returns KindStack.
func (*Stack) Kind() Kind { return KindStack }

// NewStack allocates an empty, named Stack.
func (h *Heap) NewStack(name string) (Ref, error) {
	return h.Alloc(&Stack{Name: name})
}

// Stack dereferences a Stack ref.
func (h *Heap) Stack(r Ref) (*Stack, error) { return As[*Stack](h, r) }

// Push appends r.
func (s *Stack) Push(r Ref) { s.Elems = append(s.Elems, r) }

// Pop removes and returns the top ref.
func (s *Stack) Pop() (Ref, error) {
	i := len(s.Elems) - 1
	if i < 0 {
		return Ref{}, StackUnderflowError{s.Name}
	}
	r := s.Elems[i]
	s.Elems[i] = Ref{}
	s.Elems = s.Elems[:i]
	return r, nil
}

// Peek returns the ref n places below the top.
func (s *Stack) Peek(n int) (Ref, error) {
	i := len(s.Elems) - 1 - n
	if n < 0 || i < 0 {
		return Ref{}, StackUnderflowError{s.Name}
	}
	return s.Elems[i], nil
}

// Len returns the stack depth.
func (s *Stack) Len() int { return len(s.Elems) }

// Truncate drops everything above depth n.
func (s *Stack) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	for i := n; i < len(s.Elems); i++ {
		s.Elems[i] = Ref{}
	}
	if n < len(s.Elems) {
		s.Elems = s.Elems[:n]
	}
}

func (s *Stack) trace(visit func(Ref)) {
	for _, r := range s.Elems {
		visit(r)
	}
}

func (s *Stack) finalize() { s.Elems = nil }

func (s *Stack) fetch(_ *Heap, index Ref) (Ref, error) {
	if !index.IsNil() {
		return Ref{}, errUnsupported
	}
	return s.Pop()
}

func (s *Stack) store(_ *Heap, index, value Ref) error {
	if !index.IsNil() {
		return errUnsupported
	}
	s.Push(value)
	return nil
}

func (s *Stack) print(p *printState, _ Ref) error {
	p.WriteString("<stack")
	for _, r := range s.Elems {
		p.WriteString(" ")
		if err := p.elem(r); err != nil {
			return err
		}
	}
	p.WriteString(">")
	return nil
}
