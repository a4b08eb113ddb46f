package fileinput

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jcorbin/objforth/internal/runeio"
)

// Location names a line in an Input stream.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Line is the content of one input line and where it came from.
type Line struct {
	Location
	bytes.Buffer
}

func (il *Line) String() string { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Input reads lines through a Queue of one or more streams, one after the
// other. The line being scanned and the last completed line are tracked for
// error reporting.
type Input struct {
	Queue []io.Reader

	Last Line
	Scan Line

	cur io.Reader
	rr  runeio.Reader
}

// ReadLine reads through the next line feed, returning the line including
// its terminator, and where it started. A final unterminated line is
// returned along with io.EOF once every queued stream is exhausted.
func (in *Input) ReadLine() (string, Location, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return "", in.Scan.Location, io.EOF
		}
		loc := in.Scan.Location
		for {
			r, _, err := in.rr.ReadRune()
			if err == nil {
				in.Scan.WriteRune(r)
				if r == '\n' {
					line := in.Scan.Buffer.String()
					in.nextLine()
					return line, loc, nil
				}
				continue
			}
			if err != io.EOF {
				return "", loc, err
			}
			line := in.Scan.Buffer.String()
			in.closeIn()
			if line != "" {
				in.nextLine()
				if len(in.Queue) == 0 {
					return line, loc, io.EOF
				}
				return line + "\n", loc, nil
			}
			break
		}
	}
}

// ReadRune reads one rune through the queue, tracking lines like ReadLine.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}
		r, n, err := in.rr.ReadRune()
		if err == io.EOF {
			in.closeIn()
			continue
		} else if err != nil {
			return 0, 0, err
		}
		if r == '\n' {
			in.nextLine()
		} else {
			in.Scan.WriteRune(r)
		}
		return r, n, nil
	}
}

func (in *Input) nextLine() {
	in.Last.Reset()
	in.Last.Location = in.Scan.Location
	in.Last.Write(in.Scan.Bytes())
	in.Scan.Reset()
	in.Scan.Line++
}

func (in *Input) closeIn() {
	if cl, ok := in.cur.(io.Closer); ok {
		cl.Close()
	}
	in.cur, in.rr = nil, nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	in.cur = r
	in.rr = runeio.NewReader(r)
	in.Scan.Reset()
	in.Scan.Name = NameOf(r)
	in.Scan.Line = 1
	return true
}

// NameOf returns the Name() of obj, or a placeholder naming its type.
func NameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}

// Named gives r a Name for location reporting.
func Named(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }
