package object

// Hold opens a scope on the hold stack, the root of freshly allocated
// objects that are not yet linked anywhere else. Every Alloc made while a
// scope is open is held; Keep holds additional values. The returned
// function truncates the hold stack back to where the scope began, and is
// safe to call more than once:
//
//	defer h.Hold()()
func (h *Heap) Hold() (release func()) {
	mark := len(h.hold)
	h.holding++
	done := false
	return func() {
		if done {
			return
		}
		done = true
		h.holding--
		if mark < len(h.hold) {
			h.hold = h.hold[:mark]
		}
	}
}

// Keep pushes refs onto the hold stack; nil refs are skipped. Kept values
// stay rooted until the enclosing scope is released or ClearHold is called.
func (h *Heap) Keep(refs ...Ref) {
	for _, r := range refs {
		if r.slot != 0 {
			h.hold = append(h.hold, r)
		}
	}
}

// Holding returns the number of values currently on the hold stack.
func (h *Heap) Holding() int { return len(h.hold) }

// ClearHold empties the hold stack and abandons any open scopes; used to
// recover after a failed unit.
func (h *Heap) ClearHold() {
	h.hold = h.hold[:0]
	h.holding = 0
}

// build runs f inside its own hold scope, so that intermediate allocations
// survive each other, then re-holds the result in the caller's scope.
func (h *Heap) build(f func() (Ref, error)) (Ref, error) {
	release := h.Hold()
	r, err := f()
	release()
	if err == nil && h.holding > 0 {
		h.Keep(r)
	}
	return r, err
}
