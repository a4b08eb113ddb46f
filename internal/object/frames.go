package object

import "fmt"

// Frame records the caller of a colon definition.
type Frame struct {
	Caller Ref
	IP     int
	Loops  int
}

// Kind returns KindFrame.
func (*Frame) Kind() Kind { return KindFrame }

func (f *Frame) trace(visit func(Ref)) { visit(f.Caller) }

func (f *Frame) print(p *printState, _ Ref) error {
	p.WriteString("<frame ")
	if err := p.elem(f.Caller); err != nil {
		return err
	}
	fmt.Fprintf(p, " @%v loops:%v>", f.IP, f.Loops)
	return nil
}

// Loop is the state of one active counted loop.
type Loop struct {
	Index float64
	Limit float64
}

// Kind returns KindLoop.
func (*Loop) Kind() Kind { return KindLoop }

func (l *Loop) print(p *printState, _ Ref) error {
	fmt.Fprintf(p, "<loop %v/%v>", FormatNumber(l.Index), FormatNumber(l.Limit))
	return nil
}

// Construct tags the control structure an open Marker belongs to.
type Construct uint8

// Constructs recorded on the compiler's marker stack.
const (
	MarkColon Construct = iota
	MarkIf
	MarkDo
	MarkBegin
	MarkWhile
)

var constructNames = [...]string{"colon", "if", "do", "begin", "while"}

func (c Construct) String() string {
	if int(c) < len(constructNames) {
		return constructNames[c]
	}
	return fmt.Sprintf("Construct(%d)", uint8(c))
}

// Marker is an open control structure awaiting resolution.
type Marker struct {
	Construct Construct
	Offset    int
}

// Kind returns KindMarker.
func (*Marker) Kind() Kind { return KindMarker }

func (m *Marker) print(p *printState, _ Ref) error {
	fmt.Fprintf(p, "<%v %v>", m.Construct, m.Offset)
	return nil
}
