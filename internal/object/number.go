package object

import (
	"fmt"
	"math"
	"strconv"

	"fortio.org/safecast"
)

// Number is the sole numeric kind.
type Number struct {
	N float64
}

// Kind returns KindNumber.
func (*Number) Kind() Kind { return KindNumber }

// NewNumber allocates a Number.
func (h *Heap) NewNumber(n float64) (Ref, error) {
	return h.Alloc(&Number{N: n})
}

// Number returns the value of a Number ref.
func (h *Heap) Number(r Ref) (float64, error) {
	n, err := As[*Number](h, r)
	if err != nil {
		return 0, err
	}
	return n.N, nil
}

// Int converts a Number ref to a whole int, failing with a TypeError on
// fractional or out of range values.
func (h *Heap) Int(op string, r Ref) (int, error) {
	n, err := h.Number(r)
	if err != nil {
		return 0, err
	}
	return toInt(op, n)
}

func toInt(op string, n float64) (int, error) {
	if math.Trunc(n) != n {
		return 0, TypeError{Op: op, Kinds: []Kind{KindNumber}, Reason: fmt.Sprintf("%v is not a whole number", n)}
	}
	i, err := safecast.Convert[int](n)
	if err != nil {
		return 0, TypeError{Op: op, Kinds: []Kind{KindNumber}, Reason: err.Error()}
	}
	return i, nil
}

func (n *Number) compare(other Object) int {
	m := other.(*Number).N
	switch {
	case n.N < m:
		return -1
	case n.N > m:
		return 1
	}
	return 0
}

func (n *Number) add(h *Heap, other Ref) (Ref, error) {
	m, ok := h.peek(other).(*Number)
	if !ok {
		return Ref{}, errUnsupported
	}
	return h.NewNumber(n.N + m.N)
}

func (n *Number) sub(h *Heap, other Ref) (Ref, error) {
	m, ok := h.peek(other).(*Number)
	if !ok {
		return Ref{}, errUnsupported
	}
	return h.NewNumber(n.N - m.N)
}

func (n *Number) print(p *printState, _ Ref) error {
	p.WriteString(FormatNumber(n.N))
	return nil
}

// FormatNumber renders n in its shortest round-tripping form.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
