package runeio

import (
	"io"
	"unicode/utf8"
)

// WriteANSIRune writes r to w: ASCII as a single byte, NEL as "\r\n", the
// other C1 controls in their 7-bit escape form (CSI as ESC [), and anything
// else as UTF-8. Invalid runes are written as U+FFFD.
func WriteANSIRune(w io.Writer, r rune) (n int, err error) {
	switch {
	case 0 <= r && r < 0x80:
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	case r == 0x85:
		return w.Write([]byte{'\r', '\n'})
	case 0x80 <= r && r <= 0x9f:
		return w.Write([]byte{0x1b, byte(r ^ 0xc0)})
	}
	var buf [utf8.UTFMax]byte
	return w.Write(buf[:utf8.EncodeRune(buf[:], r)])
}
