package engine

// History is the append-only log of positions in a game, one snapshot per
// ply. Snapshots are never modified after they are pushed.
type History struct {
	states []*Board
	limit  int
	offset int // plies dropped from the front when limit is exceeded
}

// NewHistory starts a history at start. A positive limit bounds the number
// of retained snapshots; the oldest are dropped first.
func NewHistory(start *Board, limit int) *History {
	return &History{states: []*Board{start}, limit: limit}
}

func (h *History) Current() *Board {
	return h.states[len(h.states)-1]
}

func (h *History) Push(b *Board) {
	h.states = append(h.states, b)
	if h.limit > 0 && len(h.states) > h.limit {
		drop := len(h.states) - h.limit
		h.states = append([]*Board(nil), h.states[drop:]...)
		h.offset += drop
	}
}

// At returns the snapshot after ply n of the game.
func (h *History) At(n int) (*Board, bool) {
	i := n - h.offset
	if i < 0 || i >= len(h.states) {
		return nil, false
	}
	return h.states[i], true
}

func (h *History) Len() int {
	return h.offset + len(h.states) - 1
}

// Undoable is the number of plies that can still be taken back.
func (h *History) Undoable() int {
	return len(h.states) - 1
}

// PreviousState returns the position before the current one, or the
// current one when nothing precedes it.
func (h *History) PreviousState() *Board {
	if len(h.states) < 2 {
		return h.Current()
	}
	return h.states[len(h.states)-2]
}

// Undo drops the current snapshot and returns the one before it. It is a
// no-op on the first retained snapshot.
func (h *History) Undo() (*Board, bool) {
	if len(h.states) < 2 {
		return h.Current(), false
	}
	h.states = h.states[:len(h.states)-1]
	return h.Current(), true
}
