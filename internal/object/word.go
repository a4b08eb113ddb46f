package object

// Code selects how a Word behaves when invoked; its meaning is assigned by
// the virtual machine that owns the code table.
type Code uint16

// CellKind discriminates the cells of a compiled body.
type CellKind uint8

// Cell kinds.
const (
	CellCall CellKind = iota // invoke Ref, a Word
	CellNum                  // literal number or branch offset
	CellObj                  // object operand
)

// Cell is one element of a compiled word body.
type Cell struct {
	Kind CellKind
	Ref  Ref
	Num  float64
}

// Call builds a cell that invokes w.
func Call(w Ref) Cell { return Cell{Kind: CellCall, Ref: w} }

// Num builds a literal cell.
func Num(n float64) Cell { return Cell{Kind: CellNum, Num: n} }

// Obj builds an operand cell.
func Obj(r Ref) Cell { return Cell{Kind: CellObj, Ref: r} }

// Word is a named, executable dictionary entry: a primitive, a colon
// definition with a threaded body, a constant or a variable.
type Word struct {
	Name      string
	Code      Code
	Body      []Cell
	Immediate bool
	Value     Ref
}

// Kind returns KindWord.
func (*Word) Kind() Kind { return KindWord }

// NewWord allocates a Word.
func (h *Heap) NewWord(name string, code Code) (Ref, error) {
	return h.Alloc(&Word{Name: name, Code: code})
}

// Word dereferences a Word ref.
func (h *Heap) Word(r Ref) (*Word, error) { return As[*Word](h, r) }

func (w *Word) trace(visit func(Ref)) {
	visit(w.Value)
	for _, c := range w.Body {
		if c.Kind != CellNum {
			visit(c.Ref)
		}
	}
}

func (w *Word) finalize() { w.Body = nil }

// fetch reads the value slot; words are not indexable.
func (w *Word) fetch(_ *Heap, index Ref) (Ref, error) {
	if !index.IsNil() {
		return Ref{}, errUnsupported
	}
	return w.Value, nil
}

func (w *Word) store(_ *Heap, index, value Ref) error {
	if !index.IsNil() {
		return errUnsupported
	}
	w.Value = value
	return nil
}

func (w *Word) print(p *printState, _ Ref) error {
	p.WriteString("<word ")
	p.WriteString(w.Name)
	p.WriteString(">")
	return nil
}
