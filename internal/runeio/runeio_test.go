package runeio_test

import (
	"strings"
	"testing"

	"github.com/jcorbin/objforth/internal/runeio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnquoteRune(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want rune
	}{
		{"'a'", 'a'},
		{`'\n'`, '\n'},
		{`'\x41'`, 'A'},
		{"'é'", 'é'},
		{"<ESC>", 0x1b},
		{"<esc>", 0x1b},
		{"^[", 0x1b},
		{"^C", 0x03},
		{"<SP>", ' '},
		{"<CSI>", 0x9b},
	} {
		r, err := runeio.UnquoteRune(tc.in)
		require.NoError(t, err, "unquote %q", tc.in)
		assert.Equal(t, tc.want, r, "unquote %q", tc.in)
	}

	for _, bad := range []string{"a", "''", "'ab'", "<NOPE>", "'a"} {
		_, err := runeio.UnquoteRune(bad)
		assert.Error(t, err, "unquote %q", bad)
	}
}

func TestWriteANSIRune(t *testing.T) {
	var sb strings.Builder
	for _, r := range []rune{'h', 'i', 0x85, 0x9b, 'é'} {
		_, err := runeio.WriteANSIRune(&sb, r)
		require.NoError(t, err)
	}
	assert.Equal(t, "hi\r\n\x1b[é", sb.String())
}
