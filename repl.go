package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const replContinuePrompt = "... "

type repl struct {
	vm      *VM
	prompt  string
	history string
	out     io.Writer
	errorf  func(err error)
}

// run reads units from the terminal until end of input or `bye`. Errors are
// reported and the session continues.
func (r repl) run(ctx context.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if r.history != "" {
		if f, err := os.Open(r.history); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	for ctx.Err() == nil {
		src, ok := r.read(ln)
		if !ok {
			fmt.Fprintln(r.out)
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.TrimSpace(src) == "bye" {
			break
		}
		if err := r.vm.Eval(ctx, src); err != nil {
			r.errorf(err)
			continue
		}
		fmt.Fprintln(r.out, " ok")
	}

	if r.history != "" {
		if f, err := os.Create(r.history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return ctx.Err()
}

// read accumulates lines until they form a complete unit. Ctrl-C abandons
// the lines read so far; false means end of input.
func (r repl) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := r.prompt
		if b.Len() > 0 {
			prompt = replContinuePrompt
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		b.WriteString(line)
		b.WriteByte('\n')
		if src := b.String(); unitComplete(src) {
			return src, true
		}
	}
}
