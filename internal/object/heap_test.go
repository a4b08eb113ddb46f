package object_test

import (
	"testing"

	"github.com/jcorbin/objforth/internal/object"
	"github.com/jcorbin/objforth/internal/panicerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Heap(t *testing.T) {
	for _, tc := range []heapTestCase{
		heapTest("alloc and get", 8,
			"fresh heap", func(t *testing.T, h *testHeap) {
				assert.Equal(t, object.Stats{Capacity: 8, Free: 8}, h.Stats())
			},
			"lower slots first", func(t *testing.T, h *testHeap) {
				a := h.number(t, 1)
				b := h.number(t, 2)
				assert.Equal(t, 0, a.Slot())
				assert.Equal(t, 1, b.Slot())
				h.root(a, b)
				assert.Equal(t, 2, h.Stats().Live)
			},
			"nil deref", func(t *testing.T, h *testHeap) {
				obj, err := h.Get(object.Ref{})
				require.NoError(t, err)
				assert.Nil(t, obj)
				assert.True(t, object.Ref{}.IsNil())
				assert.Equal(t, -1, object.Ref{}.Slot())
			},
		),

		heapTest("collect reclaims unreachable", 16,
			"allocate garbage", func(t *testing.T, h *testHeap) {
				for i := 0; i < 10; i++ {
					h.number(t, float64(i))
				}
				keep := h.number(t, 42)
				h.root(keep)
				assert.Equal(t, 11, h.Stats().Live)
			},
			"collect", func(t *testing.T, h *testHeap) {
				stats := h.Collect()
				assert.Equal(t, object.GCStats{Live: 1, Freed: 10}, stats)
				assert.Equal(t, 15, h.Stats().Free)
				n, err := h.Number(h.roots[0])
				require.NoError(t, err)
				assert.Equal(t, 42.0, n)
			},
		),

		heapTest("use after free is detected", 4,
			"dangling ref", func(t *testing.T, h *testHeap) {
				r := h.number(t, 7)
				h.Collect()
				_, err := h.Get(r)
				assert.Equal(t, object.UseAfterFreeError{Ref: r}, err)
				assert.False(t, h.Live(r))
			},
			"reused slot", func(t *testing.T, h *testHeap) {
				old := h.number(t, 1)
				h.Collect()
				fresh := h.number(t, 2)
				h.root(fresh)
				require.Equal(t, old.Slot(), fresh.Slot(), "expected slot reuse")
				_, err := h.Get(old)
				assert.Error(t, err, "stale generation must not deref")
				n, err := h.Number(fresh)
				require.NoError(t, err)
				assert.Equal(t, 2.0, n)
			},
		),

		heapTest("out of memory", 4,
			"fill", func(t *testing.T, h *testHeap) {
				for i := 0; i < 4; i++ {
					h.root(h.number(t, float64(i)))
				}
			},
			"exhausted", func(t *testing.T, h *testHeap) {
				_, err := h.NewNumber(5)
				assert.Equal(t, object.ErrOutOfMemory, err)
			},
			"unroot one", func(t *testing.T, h *testHeap) {
				h.roots = h.roots[1:]
				r, err := h.NewNumber(5)
				require.NoError(t, err)
				assert.Equal(t, 0, r.Slot())
			},
		),

		heapTest("transitive tracing", 32,
			"build nested tables", func(t *testing.T, h *testHeap) {
				outer := h.table(t)
				h.root(outer)
				inner := h.table(t)
				require.NoError(t, h.Store(outer, h.str(t, "inner"), inner))
				require.NoError(t, h.Store(inner, object.Ref{}, h.number(t, 9)))
			},
			"survives collection", func(t *testing.T, h *testHeap) {
				stats := h.Collect()
				// outer(3) inner(3) "inner" 9
				assert.Equal(t, 8, stats.Live)
				inner, ok, err := h.LookupString(h.roots[0], "inner")
				require.NoError(t, err)
				require.True(t, ok)
				v, err := h.Fetch(inner, h.number(t, 0))
				require.NoError(t, err)
				assert.Equal(t, "9", h.Format(v))
			},
			"cycles terminate", func(t *testing.T, h *testHeap) {
				outer := h.roots[0]
				require.NoError(t, h.Store(outer, h.str(t, "self"), outer))
				h.Collect()
				assert.True(t, h.Live(outer))
			},
		),

		heapTest("hold scopes", 8,
			"held allocations survive collection", func(t *testing.T, h *testHeap) {
				release := h.Hold()
				a := h.number(t, 1)
				b := h.number(t, 2)
				h.Collect()
				assert.True(t, h.Live(a))
				assert.True(t, h.Live(b))
				assert.Equal(t, 2, h.Holding())
				release()
				release()
				assert.Equal(t, 0, h.Holding())
				h.Collect()
				assert.False(t, h.Live(a))
			},
			"keep outside allocation", func(t *testing.T, h *testHeap) {
				a := h.number(t, 3)
				func() {
					defer h.Hold()()
					h.Keep(a, object.Ref{})
					assert.Equal(t, 1, h.Holding())
					h.Collect()
					assert.True(t, h.Live(a))
				}()
				h.Collect()
				assert.False(t, h.Live(a))
			},
			"nested scopes", func(t *testing.T, h *testHeap) {
				outer := h.Hold()
				a := h.number(t, 1)
				inner := h.Hold()
				b := h.number(t, 2)
				inner()
				h.Collect()
				assert.True(t, h.Live(a))
				assert.False(t, h.Live(b))
				outer()
			},
			"table construction under stress", func(t *testing.T, h *testHeap) {
				h.SetStress(true)
				defer h.SetStress(false)
				defer h.Hold()()
				tab := h.table(t)
				// collection before each allocation must not reclaim the parts
				require.NoError(t, h.Store(tab, object.Ref{}, h.number(t, 5)))
				n, err := h.Fetch(tab, object.Ref{})
				require.NoError(t, err)
				assert.Equal(t, "1", h.Format(n))
			},
			"clear", func(t *testing.T, h *testHeap) {
				h.Hold()
				h.number(t, 1)
				h.ClearHold()
				assert.Equal(t, 0, h.Holding())
			},
		),

		heapTest("stress collects every allocation", 8,
			"count", func(t *testing.T, h *testHeap) {
				h.SetStress(true)
				before := h.Stats().Collections
				for i := 0; i < 5; i++ {
					h.number(t, float64(i))
				}
				assert.Equal(t, before+5, h.Stats().Collections)
				assert.Equal(t, 1, h.Stats().Live)
			},
		),
	} {
		t.Run(tc.name, tc.run)
	}
}

type testHeap struct {
	*object.Heap
	roots []object.Ref
}

func (h *testHeap) root(refs ...object.Ref) {
	h.roots = append(h.roots, refs...)
}

func (h *testHeap) number(t *testing.T, n float64) object.Ref {
	r, err := h.NewNumber(n)
	require.NoError(t, err, "must allocate number %v", n)
	return r
}

func (h *testHeap) str(t *testing.T, s string) object.Ref {
	r, err := h.NewString(s)
	require.NoError(t, err, "must allocate string %q", s)
	return r
}

func (h *testHeap) table(t *testing.T) object.Ref {
	r, err := h.NewTable()
	require.NoError(t, err, "must allocate table")
	return r
}

func heapTest(name string, capacity int, args ...interface{}) (tc heapTestCase) {
	tc.name = name
	tc.capacity = capacity
	for i := 0; i < len(args); i++ {
		var step heapTestStep
		step.name = args[i].(string)
		if i++; i >= len(args) {
			panic("heapTest: missing function argument after name")
		}
		step.f = args[i].(func(t *testing.T, h *testHeap))
		tc.steps = append(tc.steps, step)
	}
	return tc
}

type heapTestCase struct {
	name     string
	capacity int
	stress   bool
	steps    []heapTestStep
}

type heapTestStep struct {
	name string
	f    func(t *testing.T, h *testHeap)
}

func (tc heapTestCase) run(t *testing.T) {
	h := &testHeap{Heap: object.NewHeap(tc.capacity)}
	h.SetLogf(t.Logf)
	h.SetStress(tc.stress)
	h.AddRoot(func(visit func(object.Ref)) {
		for _, r := range h.roots {
			visit(r)
		}
	})
	for _, step := range tc.steps {
		if !t.Run(step.name, func(t *testing.T) {
			isolateTest(t, func(t *testing.T) { step.f(t, h) })
		}) {
			break
		}
	}
}

func isolateTest(t *testing.T, f func(t *testing.T)) {
	if err := panicerr.Recover(t.Name(), func() error {
		f(t)
		return nil
	}); err != nil {
		t.Logf("%+v", err)
		t.Fail()
	}
}
