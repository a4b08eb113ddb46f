package main

import (
	"bytes"
	"io"
)

//// The prelude: words built from the primitives in the language itself.

var prelude = preludeSource{}

type preludeSource struct{}

func (preludeSource) Name() string { return "prelude.fs" }

func (preludeSource) WriteTo(w io.Writer) (n int64, err error) {
	var buf bytes.Buffer
	line := func(parts ...string) {
		if err != nil {
			return
		}
		for _, s := range parts {
			buf.WriteString(s)
		}
		buf.WriteByte('\n')
		var m int64
		m, err = buf.WriteTo(w)
		n += m
	}

	line(`\ flags`)
	line(`-1 constant true`)
	line(`0 constant false`)

	line(`\ characters`)
	line(`32 constant bl`)
	line(`: spaces ( n -- ) 0 do space loop ;`)

	line(`\ stack shuffles`)
	line(`: ?dup ( x -- x x | 0 ) dup if dup then ;`)
	line(`: tuck ( a b -- b a b ) swap over ;`)
	line(`: -rot ( a b c -- c a b ) rot rot ;`)
	line(`: 2over ( a b c d -- a b c d a b ) 3 pick 3 pick ;`)

	line(`\ comparisons`)
	line(`: not ( x -- flag ) 0= ;`)
	line(`: 0> ( n -- flag ) 0 > ;`)
	line(`: 0<> ( x -- flag ) 0= 0= ;`)
	line(`: <= ( a b -- flag ) > 0= ;`)
	line(`: >= ( a b -- flag ) < 0= ;`)
	line(`: within ( n lo hi -- flag ) 2 pick > -rot >= and ;`)

	return n, err
}
