package object_test

import (
	"testing"

	"github.com/jcorbin/objforth/internal/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Table(t *testing.T) {
	for _, stress := range []bool{false, true} {
		name := "normal"
		if stress {
			name = "stress gc"
		}
		t.Run(name, func(t *testing.T) {
			for _, tc := range tableTests {
				tc.stress = stress
				t.Run(tc.name, tc.run)
			}
		})
	}
}

var tableTests = []heapTestCase{
	heapTest("hybrid routing", 64,
		"setup", func(t *testing.T, h *testHeap) {
			h.root(h.table(t))
		},
		"numeric index goes to the array part", func(t *testing.T, h *testHeap) {
			defer h.Hold()()
			tab := h.roots[0]
			require.NoError(t, h.Store(tab, h.number(t, 0), h.number(t, 10)))
			require.NoError(t, h.Store(tab, h.number(t, 3), h.number(t, 13)))
			h.expectFetch(t, tab, h.number(t, 3), "13")
			h.expectFetch(t, tab, h.number(t, 1), "(null)")
			h.expectFetch(t, tab, h.number(t, 99), "(null)")
			h.expectFetch(t, tab, object.Ref{}, "4")
		},
		"string index goes to the hash part", func(t *testing.T, h *testHeap) {
			defer h.Hold()()
			tab := h.roots[0]
			require.NoError(t, h.Store(tab, h.str(t, "name"), h.str(t, "value")))
			require.NoError(t, h.Store(tab, h.str(t, "name"), h.str(t, "replaced")))
			h.expectFetch(t, tab, h.str(t, "name"), "replaced")
			h.expectFetch(t, tab, h.str(t, "missing"), "(null)")
			// the hash part does not count toward the length
			h.expectFetch(t, tab, object.Ref{}, "4")
		},
		"unindexed store appends", func(t *testing.T, h *testHeap) {
			defer h.Hold()()
			tab := h.roots[0]
			require.NoError(t, h.Store(tab, object.Ref{}, h.number(t, 14)))
			h.expectFetch(t, tab, h.number(t, 4), "14")
			h.expectFetch(t, tab, object.Ref{}, "5")
		},
		"survives collection", func(t *testing.T, h *testHeap) {
			h.Collect()
			defer h.Hold()()
			tab := h.roots[0]
			h.expectFetch(t, tab, h.number(t, 0), "10")
			h.expectFetch(t, tab, h.str(t, "name"), "replaced")
		},
		"bad indices", func(t *testing.T, h *testHeap) {
			defer h.Hold()()
			tab := h.roots[0]
			for _, bad := range []float64{-1, 0.5} {
				err := h.Store(tab, h.number(t, bad), h.number(t, 1))
				assert.IsType(t, object.TypeError{}, err, "index %v", bad)
			}
			inner := h.table(t)
			err := h.Store(tab, inner, h.number(t, 1))
			assert.EqualError(t, err, "table table ! not supported")
		},
	),

	heapTest("arrays and hashes", 64,
		"array count and growth", func(t *testing.T, h *testHeap) {
			defer h.Hold()()
			arr, err := h.NewArray()
			require.NoError(t, err)
			require.NoError(t, h.Store(arr, h.number(t, 4), h.number(t, 1)))
			h.expectFetch(t, arr, object.Ref{}, "5")
			err = h.Store(arr, h.str(t, "k"), h.number(t, 1))
			assert.IsType(t, object.TypeError{}, err)
		},
		"hash keys by content", func(t *testing.T, h *testHeap) {
			defer h.Hold()()
			hs, err := h.NewHash()
			require.NoError(t, err)
			require.NoError(t, h.Store(hs, h.str(t, "a"), h.number(t, 1)))
			require.NoError(t, h.Store(hs, h.str(t, "b"), h.number(t, 2)))
			require.NoError(t, h.Store(hs, h.str(t, "a"), h.number(t, 3)))
			h.expectFetch(t, hs, h.str(t, "a"), "3")
			h.expectFetch(t, hs, object.Ref{}, "2")
			err = h.Store(hs, h.number(t, 1), h.number(t, 1))
			assert.IsType(t, object.TypeError{}, err)

			var keys []string
			require.NoError(t, h.Pairs(hs, func(k, _ object.Ref) {
				keys = append(keys, h.Format(k))
			}))
			assert.Equal(t, []string{"a", "b"}, keys)
		},
		"merge", func(t *testing.T, h *testHeap) {
			defer h.Hold()()
			dst, src := h.table(t), h.table(t)
			require.NoError(t, h.Store(dst, h.str(t, "x"), h.number(t, 1)))
			require.NoError(t, h.Store(src, h.str(t, "x"), h.number(t, 2)))
			require.NoError(t, h.Store(src, h.str(t, "y"), h.number(t, 3)))
			require.NoError(t, h.Merge(dst, src))
			v, ok, err := h.LookupString(dst, "x")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "2", h.Format(v))
			_, ok, err = h.LookupString(dst, "y")
			require.NoError(t, err)
			assert.True(t, ok)
		},
	),
}

func (h *testHeap) expectFetch(t *testing.T, addr, index object.Ref, want string) {
	v, err := h.Fetch(addr, index)
	require.NoError(t, err, "unexpected fetch error")
	assert.Equal(t, want, h.Format(v), "fetch %v", h.Format(index))
}
