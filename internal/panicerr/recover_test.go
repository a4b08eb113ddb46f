package panicerr_test

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/jcorbin/objforth/internal/panicerr"
	"github.com/stretchr/testify/assert"
)

func TestRecover(t *testing.T) {
	errSentinel := errors.New("sentinel")

	for _, tc := range []struct {
		name  string
		f     func() error
		check func(t *testing.T, err error)
	}{
		{"nil", func() error { return nil }, func(t *testing.T, err error) {
			assert.NoError(t, err)
		}},

		{"error", func() error { return errSentinel }, func(t *testing.T, err error) {
			assert.Equal(t, errSentinel, err)
			assert.False(t, panicerr.IsPanic(err))
		}},

		{"panic value", func() error { panic("boom") }, func(t *testing.T, err error) {
			assert.True(t, panicerr.IsPanic(err))
			assert.EqualError(t, err, "test panic: boom")
			v, ok := panicerr.PanicValue(err)
			assert.True(t, ok)
			assert.Equal(t, "boom", v)
			assert.True(t, strings.Contains(fmt.Sprintf("%+v", err), "Panic stack:"))
			assert.NotEmpty(t, panicerr.PanicStack(err))
		}},

		{"panic error", func() error { panic(errSentinel) }, func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, errSentinel), "expected wrapped sentinel from %v", err)
		}},

		{"goexit", func() error {
			runtime.Goexit()
			return nil
		}, func(t *testing.T, err error) {
			assert.True(t, panicerr.IsExit(err))
			assert.EqualError(t, err, "test called runtime.Goexit")
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, panicerr.Recover("test", tc.f))
		})
	}
}
