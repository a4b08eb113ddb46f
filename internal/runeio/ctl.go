package runeio

import (
	"errors"
	"strconv"
	"strings"
)

// ControlRune is a named control codepoint.
type ControlRune struct {
	N string
	R rune
}

var (
	c0Names = strings.Fields(`
		NUL SOH STX ETX EOT ENQ ACK BEL BS  HT  NL  VT  NP  CR  SO  SI
		DLE DC1 DC2 DC3 DC4 NAK SYN ETB CAN EM  SUB ESC FS  GS  RS  US`)
	c1Names = strings.Fields(`
		PAD HOP BPH NBH IND NEL SSA ESA HTS HTJ VTS PLD PLU RI  SS2 SS3
		DCS PU1 PU2 STS CCH MW  SPA EPA SOS SGCI SCI CSI ST OSC PM  APC`)
)

// Controls lists the C0 controls, space, delete and the C1 controls, each
// with its angle bracketed mnemonic like <ESC>.
var Controls []ControlRune

// ControlWords maps mnemonics, in upper or lower case, and caret forms
// like ^[ to their runes.
var ControlWords map[string]rune

func init() {
	for i, name := range c0Names {
		Controls = append(Controls, ControlRune{"<" + name + ">", rune(i)})
	}
	Controls = append(Controls,
		ControlRune{"<SP>", 0x20},
		ControlRune{"<DEL>", 0x7f})
	for i, name := range c1Names {
		Controls = append(Controls, ControlRune{"<" + name + ">", 0x80 + rune(i)})
	}

	ControlWords = make(map[string]rune, 3*len(Controls))
	for _, ctl := range Controls {
		ControlWords[strings.ToUpper(ctl.N)] = ctl.R
		ControlWords[strings.ToLower(ctl.N)] = ctl.R
		if caret := CaretForm(ctl.R); caret != "" {
			ControlWords[caret] = ctl.R
		}
	}
}

// CaretForm returns the ^-escaped form of a control rune, like ^C for ETX
// or ^[[ for CSI; it returns the empty string for other runes.
func CaretForm(r rune) string {
	switch {
	case r < 0x20 || r == 0x7f:
		return "^" + string(r^0x40)
	case 0x80 <= r && r <= 0x9f:
		return "^[" + string(r^0xc0)
	}
	return ""
}

var errInvalidRune = errors.New(`rune literal must be "^X", "<NAME>" or 'X'`)

// UnquoteRune parses a rune literal: a quoted Go character like 'a' or
// '\n', a control mnemonic like <ESC>, or a caret form like ^[.
func UnquoteRune(token string) (rune, error) {
	if r, defined := ControlWords[token]; defined {
		return r, nil
	}
	if len(token) < 3 || token[0] != '\'' || token[len(token)-1] != '\'' {
		return 0, errInvalidRune
	}
	value, _, tail, err := strconv.UnquoteChar(token[1:], '\'')
	if err != nil {
		return 0, err
	}
	if tail != "'" {
		return 0, errInvalidRune
	}
	return value, nil
}
