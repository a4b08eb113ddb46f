package logio_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jcorbin/objforth/internal/logio"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var out strings.Builder
	var log logio.Logger
	log.SetOutput(&out)

	log.Printf("INFO", "hello %v", "world")
	log.Leveledf("TRACE")("step %d", 1)
	log.Disable("TRACE")
	log.Leveledf("TRACE")("hidden")
	assert.Equal(t, 0, log.ExitCode())

	log.ErrorIf(nil)
	log.Errorf("bad thing")
	assert.Equal(t, 1, log.ExitCode())

	assert.Equal(t, strings.Join([]string{
		"INFO: hello world",
		"TRACE: step 1",
		"ERROR: bad thing",
	}, "\n")+"\n", out.String())
}

func TestWriter(t *testing.T) {
	var got []string
	lw := &logio.Writer{
		Prefix: "out: ",
		Logf: func(mess string, args ...interface{}) {
			got = append(got, fmt.Sprintf(mess, args...))
		},
	}
	fmt.Fprintf(lw, "one\ntw")
	assert.Equal(t, []string{"out: one"}, got)
	fmt.Fprintf(lw, "o\nthree")
	assert.NoError(t, lw.Close())
	assert.Equal(t, []string{"out: one", "out: two", "out: three"}, got)
}
