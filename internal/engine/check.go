package engine

// MovePutsKingInCheck applies m to a copy of b and reports whether any
// piece not of color can then capture a king.
func (b *Board) MovePutsKingInCheck(m Move, color Color) bool {
	// Raw generation reads neither the turn nor the check status, so the
	// copy skips recomputing them.
	next := b.Clone()
	next.execute(m, nil)
	for _, p := range next.pieces {
		if p.Color == color {
			continue
		}
		for _, reply := range ValidMoves(next, p, false) {
			if reply.Captured != nil && reply.Captured.Type == King {
				return true
			}
		}
	}
	return false
}

// KingInCheck returns the first king any piece on the board can capture.
func (b *Board) KingInCheck() (Piece, bool) {
	for _, p := range b.pieces {
		for _, m := range ValidMoves(b, p, false) {
			if m.Captured != nil && m.Captured.Type == King {
				return *m.Captured, true
			}
		}
	}
	return Piece{}, false
}

// LegalMoves returns every legal move of color in board order.
func (b *Board) LegalMoves(color Color) []Move {
	var moves []Move
	for _, p := range b.pieces {
		if p.Color == color {
			moves = append(moves, ValidMoves(b, p, true)...)
		}
	}
	return moves
}

// HasLegalMove stops at the first piece with a legal move.
func (b *Board) HasLegalMove(color Color) bool {
	for _, p := range b.pieces {
		if p.Color == color && len(ValidMoves(b, p, true)) > 0 {
			return true
		}
	}
	return false
}

// GameOver reports whether either side is out of legal moves. Whether
// that is mate or stalemate is up to the caller, via InCheck.
func (b *Board) GameOver() bool {
	return !b.HasLegalMove(White) || !b.HasLegalMove(Black)
}
