package object

import "math/bits"

// GCStats summarizes one collection.
type GCStats struct {
	Live  int
	Freed int
}

// Collect runs a full mark-sweep collection.
//
// The occupancy bitmap is snapshotted and cleared, every registered root
// source and the hold stack are traced, re-marking reachable slots, and
// every slot present in the snapshot but left unmarked is finalized,
// zeroed, its generation bumped, and pushed back onto the free list.
func (h *Heap) Collect() GCStats {
	copy(h.snap, h.inuse)
	for i := range h.inuse {
		h.inuse[i] = 0
	}

	for _, root := range h.roots {
		root(h.mark)
	}
	for _, r := range h.hold {
		h.mark(r)
	}
	for len(h.gray) > 0 {
		i := h.gray[len(h.gray)-1]
		h.gray = h.gray[:len(h.gray)-1]
		if t, ok := h.slots[i].obj.(tracer); ok {
			t.trace(h.mark)
		}
	}

	var stats GCStats
	for w, was := range h.snap {
		dead := was &^ h.inuse[w]
		for dead != 0 {
			b := bits.TrailingZeros64(dead)
			dead &^= 1 << b
			h.release(uint32(w*64 + b))
			stats.Freed++
		}
	}
	stats.Live = popcount(h.inuse)
	h.collections++
	h.logf("collected freed:%v live:%v free:%v", stats.Freed, stats.Live, len(h.free))
	return stats
}

// mark sets the live bit for r and queues it for tracing. Refs to free
// slots or stale generations are ignored.
func (h *Heap) mark(r Ref) {
	if r.slot == 0 {
		return
	}
	i := r.slot - 1
	if int(i) >= len(h.slots) {
		return
	}
	w, bit := i/64, uint64(1)<<(i%64)
	if h.snap[w]&bit == 0 || h.inuse[w]&bit != 0 {
		return
	}
	if h.slots[i].gen != r.gen {
		return
	}
	h.inuse[w] |= bit
	h.gray = append(h.gray, i)
}

func (h *Heap) release(i uint32) {
	s := &h.slots[i]
	if f, ok := s.obj.(finalizer); ok {
		f.finalize()
	}
	s.obj = nil
	s.gen++
	h.free = append(h.free, i)
}
