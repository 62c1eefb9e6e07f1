package engine

// Move relocates Piece to To. Captured is set for captures, including en
// passant where the captured pawn does not stand on To. Castle is set only
// for castling, which moves the rook as well and never captures.
type Move struct {
	Piece    Piece
	To       Position
	Captured *Piece
	Castle   *CastleRook
}

type CastleRook struct {
	Rook Piece
	To   Position
}

func (m Move) From() Position {
	return m.Piece.Position
}

func (m Move) IsCastle() bool {
	return m.Castle != nil
}

func (m Move) IsCapture() bool {
	return m.Captured != nil
}

// IsEnPassant reports whether the move captures a pawn that is not on the
// destination square.
func (m Move) IsEnPassant() bool {
	return m.Captured != nil && m.Captured.Position != m.To
}

// IsPromotion reports whether the move takes a pawn to the last row.
func (m Move) IsPromotion() bool {
	return m.Piece.Type == Pawn && (m.To.Y == 0 || m.To.Y == 7)
}

func newMove(p Piece, to Position, captured *Piece) Move {
	m := Move{Piece: p, To: to}
	if captured != nil {
		c := *captured
		m.Captured = &c
	}
	return m
}
