package object

import (
	"io"
	"strconv"
	"strings"
)

// maxPrintDepth bounds recursion into nested (possibly cyclic) containers.
const maxPrintDepth = 8

type printState struct {
	h     *Heap
	w     io.Writer
	depth int
	err   error
}

func (p *printState) Write(b []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	n, err := p.w.Write(b)
	p.err = err
	return n, err
}

func (p *printState) WriteString(s string) (int, error) {
	return p.Write([]byte(s))
}

func (p *printState) quote(b []byte) {
	p.WriteString(strconv.Quote(string(b)))
}

func (p *printState) elem(r Ref) error {
	if p.depth >= maxPrintDepth {
		p.WriteString("...")
		return p.err
	}
	p.depth++
	err := p.print(r)
	p.depth--
	return err
}

func (p *printState) print(r Ref) error {
	if r.IsNil() {
		p.WriteString("(null)")
		return p.err
	}
	obj, err := p.h.Get(r)
	if err != nil {
		return err
	}
	if pr, ok := obj.(printer); ok {
		if err := pr.print(p, r); err != nil {
			return err
		}
	} else {
		p.WriteString("<" + obj.Kind().String() + ">")
	}
	return p.err
}

// Print writes a human readable form of r to w: nil as (null), numbers in
// shortest form, strings raw at the top level and quoted when nested.
func (h *Heap) Print(w io.Writer, r Ref) error {
	p := printState{h: h, w: w}
	return p.print(r)
}

// Format returns the printed form of r, or the error text.
func (h *Heap) Format(r Ref) string {
	var sb strings.Builder
	if err := h.Print(&sb, r); err != nil {
		return "<" + err.Error() + ">"
	}
	return sb.String()
}
