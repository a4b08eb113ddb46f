package object

import "errors"

// errUnsupported is returned by kind methods that do not handle their
// operand; the Heap converts it into a TypeError naming every operand.
var errUnsupported = errors.New("unsupported")

// peek dereferences r without error reporting; callers have already
// validated r.
func (h *Heap) peek(r Ref) Object {
	obj, _ := h.Get(r)
	return obj
}

// check validates that every ref is nil or live.
func (h *Heap) check(refs ...Ref) error {
	for _, r := range refs {
		if _, err := h.Get(r); err != nil {
			return err
		}
	}
	return nil
}
