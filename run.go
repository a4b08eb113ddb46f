package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/objforth/internal/fileinput"
)

// Run reads the queued inputs line by line, evaluating each unit once it
// is complete: a unit spans lines while a definition, control structure,
// comment or string literal is open. The first failure stops Run and is
// returned prefixed with the location that the failed unit started at.
func (vm *VM) Run(ctx context.Context) error {
	var unit strings.Builder
	var start fileinput.Location
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, loc, err := vm.in.ReadLine()
		if line != "" {
			if unit.Len() == 0 {
				start = loc
			}
			unit.WriteString(line)
		}
		eof := err == io.EOF
		if err != nil && !eof {
			return err
		}

		if unit.Len() > 0 && (eof || unitComplete(unit.String())) {
			src := unit.String()
			unit.Reset()
			vm.logf("<", "%v %q", start, src)
			if err := vm.Eval(ctx, src); err != nil {
				return fmt.Errorf("%v: %w", start, err)
			}
		}
		if eof {
			return nil
		}
	}
}
