package engine

// SearchConfig marks a board as a single-player session: Color is the
// automated side and Depth its search depth in plies.
type SearchConfig struct {
	Color Color `json:"color"`
	Depth int   `json:"depth"`
}

// Board is one position. Boards are produced by NewBoard and then only by
// Play and TryMove, which return a new board and leave the receiver as it
// was.
type Board struct {
	pieces    []Piece
	grid      [8][8]int // index into pieces + 1, 0 when empty
	turn      Color
	ply       int
	inCheck   *Piece
	lastMoved *Piece
	ai        *SearchConfig
	nextID    int
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position, or an empty board with
// white to move when initPieces is false.
func NewBoard(initPieces bool) *Board {
	b := &Board{turn: White}
	if !initPieces {
		return b
	}
	for x := 0; x < 8; x++ {
		b.AddPiece(Piece{Type: Pawn, Color: Black, Position: Position{X: x, Y: 1}})
	}
	for x, t := range backRank {
		b.AddPiece(Piece{Type: t, Color: Black, Position: Position{X: x, Y: 0}})
	}
	for x := 0; x < 8; x++ {
		b.AddPiece(Piece{Type: Pawn, Color: White, Position: Position{X: x, Y: 6}})
	}
	for x, t := range backRank {
		b.AddPiece(Piece{Type: t, Color: White, Position: Position{X: x, Y: 7}})
	}
	return b
}

func (b *Board) Turn() Color {
	return b.turn
}

// SetTurn sets the side to move. Only meant for setting up positions.
func (b *Board) SetTurn(c Color) {
	b.turn = c
}

// Ply is the number of moves applied since the board was created.
func (b *Board) Ply() int {
	return b.ply
}

func (b *Board) AI() *SearchConfig {
	if b.ai == nil {
		return nil
	}
	cfg := *b.ai
	return &cfg
}

func (b *Board) SetAI(cfg *SearchConfig) {
	if cfg == nil {
		b.ai = nil
		return
	}
	c := *cfg
	b.ai = &c
}

// InCheck returns the king that was in check after the last move.
func (b *Board) InCheck() (Piece, bool) {
	if b.inCheck == nil {
		return Piece{}, false
	}
	return *b.inCheck, true
}

// RecomputeCheck refreshes the check annotation after a position has been
// set up by hand with AddPiece and RemovePiece.
func (b *Board) RecomputeCheck() {
	if k, ok := b.KingInCheck(); ok {
		b.inCheck = &k
	} else {
		b.inCheck = nil
	}
}

func (b *Board) LastMoved() (Piece, bool) {
	if b.lastMoved == nil {
		return Piece{}, false
	}
	return *b.lastMoved, true
}

// Pieces returns a copy of the live pieces in board order.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, len(b.pieces))
	copy(out, b.pieces)
	return out
}

func (b *Board) PieceAt(pos Position) (Piece, bool) {
	if !pos.OnBoard() {
		return Piece{}, false
	}
	i := b.grid[pos.Y][pos.X]
	if i == 0 {
		return Piece{}, false
	}
	return b.pieces[i-1], true
}

func (b *Board) pieceAt(pos Position) *Piece {
	if !pos.OnBoard() {
		return nil
	}
	i := b.grid[pos.Y][pos.X]
	if i == 0 {
		return nil
	}
	return &b.pieces[i-1]
}

// Piece looks a piece up by its ID.
func (b *Board) Piece(id int) (Piece, bool) {
	i := b.index(id)
	if i < 0 {
		return Piece{}, false
	}
	return b.pieces[i], true
}

func (b *Board) index(id int) int {
	for i := range b.pieces {
		if b.pieces[i].ID == id {
			return i
		}
	}
	return -1
}

// AddPiece places p on the board under a fresh ID and returns it. Any
// piece already on the square is replaced.
func (b *Board) AddPiece(p Piece) Piece {
	b.RemovePieceAt(p.Position)
	b.nextID++
	p.ID = b.nextID
	b.pieces = append(b.pieces, p)
	b.grid[p.Position.Y][p.Position.X] = len(b.pieces)
	return p
}

func (b *Board) RemovePiece(id int) {
	i := b.index(id)
	if i < 0 {
		return
	}
	b.pieces = append(b.pieces[:i], b.pieces[i+1:]...)
	b.reindex()
}

func (b *Board) RemovePieceAt(pos Position) {
	if p := b.pieceAt(pos); p != nil {
		b.RemovePiece(p.ID)
	}
}

func (b *Board) reindex() {
	b.grid = [8][8]int{}
	for i, p := range b.pieces {
		b.grid[p.Position.Y][p.Position.X] = i + 1
	}
}

func (b *Board) relocate(id int, to Position) {
	i := b.index(id)
	if i < 0 {
		return
	}
	from := b.pieces[i].Position
	b.grid[from.Y][from.X] = 0
	b.pieces[i].Position = to
	b.pieces[i].Moves++
	b.grid[to.Y][to.X] = i + 1
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	c.pieces = make([]Piece, len(b.pieces))
	copy(c.pieces, b.pieces)
	if b.inCheck != nil {
		p := *b.inCheck
		c.inCheck = &p
	}
	if b.lastMoved != nil {
		p := *b.lastMoved
		c.lastMoved = &p
	}
	if b.ai != nil {
		cfg := *b.ai
		c.ai = &cfg
	}
	return &c
}

// Play returns a new board with m applied. A pawn reaching the last row is
// promoted to what promote chooses; the automated side always takes a
// queen. m must come from ValidMoves on this exact board.
func (b *Board) Play(m Move, promote PromotionProvider) *Board {
	next := b.Clone()
	next.applyMove(m, promote)
	return next
}

// TryMove returns a new board with m applied and promotion to a queen.
func (b *Board) TryMove(m Move) *Board {
	return b.Play(m, nil)
}

func (b *Board) applyMove(m Move, promote PromotionProvider) {
	moved := b.execute(m, promote)
	if p, ok := b.Piece(moved); ok {
		b.lastMoved = &p
	} else {
		b.lastMoved = nil
	}
	b.RecomputeCheck()
	b.turn = b.turn.Opponent()
	b.ply++
}

// execute moves the pieces for m and returns the ID of the piece that
// ends up on m.To. Turn and check status are left to the caller.
func (b *Board) execute(m Move, promote PromotionProvider) int {
	// A double-step flag lives until its owner moves again, which leaves
	// the opponent exactly one ply to take en passant.
	for i := range b.pieces {
		if b.pieces[i].Color == b.turn && b.pieces[i].Type == Pawn {
			b.pieces[i].EnPassant = false
		}
	}

	if m.Castle != nil {
		b.relocate(m.Piece.ID, m.To)
		b.relocate(m.Castle.Rook.ID, m.Castle.To)
		return m.Piece.ID
	}
	if m.Captured != nil {
		b.RemovePiece(m.Captured.ID)
	}
	if i := b.index(m.Piece.ID); i >= 0 && b.pieces[i].Type == Pawn {
		dy := b.pieces[i].Position.Y - m.To.Y
		b.pieces[i].EnPassant = dy == 2 || dy == -2
	}
	b.relocate(m.Piece.ID, m.To)
	return b.promote(m.Piece.ID, promote)
}

// promote replaces a pawn standing on its last row and returns the ID of
// the piece now on that square.
func (b *Board) promote(id int, promote PromotionProvider) int {
	i := b.index(id)
	if i < 0 {
		return id
	}
	pawn := b.pieces[i]
	if pawn.Type != Pawn || (pawn.Position.Y != 0 && pawn.Position.Y != 7) {
		return id
	}

	kind := Queen
	if promote != nil && (b.ai == nil || b.ai.Color != pawn.Color) {
		if t, ok := promote.Promotion(pawn); ok && isPromotionType(t) {
			kind = t
		}
	}

	b.RemovePiece(id)
	p := b.AddPiece(Piece{Type: kind, Color: pawn.Color, Position: pawn.Position})
	return p.ID
}
