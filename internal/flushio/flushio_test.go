package flushio_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/jcorbin/objforth/internal/flushio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriteFlusher(t *testing.T) {
	var sb strings.Builder
	wf := flushio.NewWriteFlusher(&sb)
	io.WriteString(wf, "now")
	assert.Equal(t, "now", sb.String(), "in-memory buffers are written through")

	assert.Equal(t, wf, flushio.NewWriteFlusher(wf), "already flushable")

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	fw := flushio.NewWriteFlusher(f)
	io.WriteString(fw, "later")
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size(), "file writes are buffered")
	require.NoError(t, fw.Flush())
	info, err = f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
}

func TestTee(t *testing.T) {
	var a, b bytes.Buffer
	wf := flushio.Tee(flushio.NewWriteFlusher(&a), nil, flushio.Tee(flushio.NewWriteFlusher(&b)))
	_, err := io.WriteString(wf, "both")
	require.NoError(t, err)
	require.NoError(t, wf.Flush())
	assert.Equal(t, "both", a.String())
	assert.Equal(t, "both", b.String())
}
