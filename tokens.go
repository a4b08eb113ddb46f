package main

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/jcorbin/objforth/internal/object"
	"github.com/jcorbin/objforth/internal/runeio"
)

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func (vm *VM) source() []byte {
	s, err := object.As[*object.String](vm.heap, vm.input)
	vm.haltif(err)
	return s.B
}

// scanToken reads the next whitespace delimited token from the unit source,
// returning false at its end.
func (vm *VM) scanToken() (string, bool) {
	src := vm.source()
	i := vm.inputPos
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	j := i
	for j < len(src) && !isSpace(src[j]) {
		j++
	}
	vm.inputPos = j
	return string(src[i:j]), i < j
}

// readUntil consumes source through the next delim, returning the text
// before it and whether delim was found.
func (vm *VM) readUntil(delim byte) (string, bool) {
	src := vm.source()
	i := vm.inputPos
	j := bytes.IndexByte(src[i:], delim)
	if j < 0 {
		vm.inputPos = len(src)
		return string(src[i:]), false
	}
	vm.inputPos = i + j + 1
	return string(src[i : i+j]), true
}

// skipSpace consumes a single whitespace byte, if any.
func (vm *VM) skipSpace() {
	if src := vm.source(); vm.inputPos < len(src) && isSpace(src[vm.inputPos]) {
		vm.inputPos++
	}
}

func isHexDigits(token string) bool {
	for i := 0; i < len(token); i++ {
		switch c := token[i]; {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// parseNumber parses a numeric literal token: 8 bare hex digits, a float, a
// (possibly base prefixed) integer, or a rune literal.
func parseNumber(token string) (float64, bool) {
	if len(token) == 8 && isHexDigits(token) {
		if n, err := strconv.ParseUint(token, 16, 32); err == nil {
			return float64(n), true
		}
	}
	if n, err := strconv.ParseFloat(token, 64); err == nil && !isFloatWord(token) {
		return n, true
	}
	if n, err := strconv.ParseInt(token, 0, 64); err == nil {
		return float64(n), true
	}
	if r, err := runeio.UnquoteRune(token); err == nil {
		return float64(r), true
	}
	return 0, false
}

// isFloatWord matches the spelled out special values that ParseFloat
// accepts, which remain available as word names.
func isFloatWord(token string) bool {
	switch strings.ToLower(strings.TrimLeft(token, "+-")) {
	case "inf", "infinity", "nan":
		return true
	}
	return false
}

// unitComplete reports whether src can be compiled as a whole: no colon
// definition, control structure, comment or string literal is left open.
func unitComplete(src string) bool {
	colon, control := 0, 0
	for i := 0; i < len(src); {
		for i < len(src) && isSpace(src[i]) {
			i++
		}
		j := i
		for j < len(src) && !isSpace(src[j]) {
			j++
		}
		token := src[i:j]
		i = j
		switch token {
		case "":
		case ":":
			colon++
		case ";":
			colon--
		case "if", "do", "begin":
			control++
		case "then", "loop", "+loop", "until", "again", "repeat":
			control--
		case "\\":
			k := strings.IndexByte(src[i:], '\n')
			if k < 0 {
				return true
			}
			i += k + 1
		case "(":
			k := strings.IndexByte(src[i:], ')')
			if k < 0 {
				return false
			}
			i += k + 1
		case "\"":
			if i < len(src) {
				i++
			}
			k := strings.IndexByte(src[i:], '"')
			if k < 0 {
				return false
			}
			i += k + 1
		}
	}
	return colon <= 0 && control <= 0
}
