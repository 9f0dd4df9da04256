package ir

// NewLabel returns the next label number and advances the counter. The
// number of labels a backend may allocate is bounded only by convention
// (N_LABELS in the reference implementation); detecting an overflow of
// that convention is left to the backend, same as upstream.
func (c *Context) NewLabel() int {
	l := c.Labels
	c.Labels++
	return l
}

// AddFixup records a deferred reference from a code position to a label,
// for the backend to resolve once every label's final position is known.
func (c *Context) AddFixup(pos, label int) {
	c.Fixups = append(c.Fixups, Fixup{Pos: pos, Label: label})
}
