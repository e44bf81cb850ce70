package peakengine

// Journal is a LIFO undo log for tentative Engine mutations made during a
// single admission attempt. The zero value is an empty, usable Journal;
// Engine.NewJournal returns one.
type Journal struct {
	undos []func()
}

// NewJournal returns an empty Journal bound to e. Every AppendPattern,
// SetOffset, or Recompute call made against e with this Journal passed in
// is undoable via Rollback.
func (e *Engine) NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) record(undo func()) {
	j.undos = append(j.undos, undo)
}

// Rollback undoes every recorded mutation in reverse (LIFO) order and
// clears the journal. Calling Rollback on an empty or already-rolled-back
// Journal is a no-op.
func (j *Journal) Rollback() {
	for i := len(j.undos) - 1; i >= 0; i-- {
		j.undos[i]()
	}
	j.undos = nil
}

// Discard clears the journal without undoing anything — used once an
// attempt succeeds and its tentative mutations should become permanent.
func (j *Journal) Discard() {
	j.undos = nil
}

// Len reports how many mutations are currently staged, mostly useful for
// tests asserting exact rollback accounting.
func (j *Journal) Len() int {
	return len(j.undos)
}
