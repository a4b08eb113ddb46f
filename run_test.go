package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Run(t *testing.T) {
	vmTestCases{
		vmTest("one line per unit").
			withStream("a.fs", "1 2 +\n3 *\n").
			expectStack(9),
		vmTest("definition spanning lines").
			withStream("a.fs", ": sq\n  dup *\n;\n5 sq .\n").
			expectOutput("25 "),
		vmTest("control spanning lines").
			withStream("a.fs", "3 0 do\n  i .\nloop\n").
			expectOutput("0 1 2 "),
		vmTest("comment spanning lines").
			withStream("a.fs", "1 ( a\nb ) 2\n").
			expectStack(1, 2),
		vmTest("final line without newline").
			withStream("a.fs", "1\n2").
			expectStack(1, 2),
		vmTest("multiple streams").
			withStream("a.fs", ": inc 1+ ;\n").
			withStream("b.fs", "41 inc\n").
			expectStack(42),
		vmTest("error location").
			withStream("a.fs", "1 .\n\n: bad\n  frob ;\n2 .\n").
			expectOutput("1 ").
			expectErrorText(`a.fs:3: undefined word "frob"`),
		vmTest("unterminated at end").
			withStream("a.fs", ": half 2 /\n").
			expectErrorText(`a.fs:1: compile error at "half": unterminated definition`),
	}.run(t)
}

func Test_unitComplete(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want bool
	}{
		{"", true},
		{"1 2 +", true},
		{": sq dup * ;", true},
		{": sq dup *", false},
		{"1 if 2", false},
		{"1 if 2 then", true},
		{"0 begin 1+ dup 5 = until", true},
		{"5 begin dup while 1- repeat", true},
		{"3 0 do i", false},
		{"( open", false},
		{"( closed ) 1", true},
		{`" open`, false},
		{`" closed"`, true},
		{`" ; "`, true},
		{"\\ : ignored", true},
		{"\\ : ignored\n: sq", false},
		{": semis-in-comment ( ; ) dup", false},
	} {
		assert.Equal(t, tc.want, unitComplete(tc.src), "unitComplete(%q)", tc.src)
	}
}

func Test_parseNumber(t *testing.T) {
	for _, tc := range []struct {
		token string
		want  float64
		ok    bool
	}{
		{"0", 0, true},
		{"-12", -12, true},
		{"3.25", 3.25, true},
		{"0x10", 16, true},
		{"ffffffff", 0xffffffff, true},
		{"fff", 0, false},
		{"'x'", 'x', true},
		{"<nul>", 0, true},
		{"nan", 0, false},
		{"dup", 0, false},
	} {
		n, ok := parseNumber(tc.token)
		if assert.Equal(t, tc.ok, ok, "parseNumber(%q)", tc.token) && ok {
			assert.Equal(t, tc.want, n, "parseNumber(%q)", tc.token)
		}
	}
}

func Test_Run_lines(t *testing.T) {
	var src strings.Builder
	for i := 0; i < 100; i++ {
		src.WriteString("1 +\n")
	}
	vmTest("many lines").withStack(0).withStream("lines.fs", src.String()).expectStack(100).run(t)
}

func Test_Run_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "count.fs")
	require.NoError(t, os.WriteFile(path, []byte(
		": countdown ( n -- )\n"+
			"  begin dup while dup . 1- repeat drop ;\n"+
			"\n"+
			"4 countdown cr\n"+
			"undefined-here\n",
	), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	vmTest("source file").
		withOptions(WithInputs(f)).
		expectOutput("4 3 2 1 \n").
		expectErrorText(path + `:5: undefined word "undefined-here"`).
		run(t)
}
