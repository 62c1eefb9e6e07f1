package engine

var (
	diagonalDirs   = []Position{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: -1}}
	orthogonalDirs = []Position{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}}
	knightDirs     = []Position{
		{X: 1, Y: 2}, {X: -1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: -2},
		{X: 2, Y: -1}, {X: 2, Y: 1}, {X: -2, Y: -1}, {X: -2, Y: 1},
	}
	kingDirs = []Position{
		{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0},
		{X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0},
	}
)

// ValidMoves returns the moves of p on b. With checkKing set, moves that
// leave p's own king capturable are dropped and castling is considered.
// Attack scans must pass checkKing=false: the filter itself generates the
// opponent's replies, and filtering those again would never terminate.
func ValidMoves(b *Board, p Piece, checkKing bool) []Move {
	if b == nil {
		return nil
	}
	var moves []Move
	switch p.Type {
	case Pawn:
		moves = pawnMoves(b, p)
	case Knight:
		moves = stepMoves(b, p, knightDirs)
	case Bishop:
		moves = slideMoves(b, p, diagonalDirs)
	case Rook:
		moves = slideMoves(b, p, orthogonalDirs)
	case Queen:
		moves = append(slideMoves(b, p, diagonalDirs), slideMoves(b, p, orthogonalDirs)...)
	case King:
		moves = stepMoves(b, p, kingDirs)
		if checkKing {
			moves = append(moves, castleMoves(b, p)...)
		}
	}
	if !checkKing {
		return moves
	}
	return filterSelfCheck(b, p.Color, moves)
}

func filterSelfCheck(b *Board, c Color, moves []Move) []Move {
	legal := moves[:0]
	for _, m := range moves {
		if !b.MovePutsKingInCheck(m, c) {
			legal = append(legal, m)
		}
	}
	return legal
}

func slideMoves(b *Board, p Piece, dirs []Position) []Move {
	var moves []Move
	for _, dir := range dirs {
		target := p.Position.Add(dir.X, dir.Y)
		for target.OnBoard() {
			occupant := b.pieceAt(target)
			if occupant == nil {
				moves = append(moves, newMove(p, target, nil))
			} else {
				if occupant.Color != p.Color {
					moves = append(moves, newMove(p, target, occupant))
				}
				break
			}
			target = target.Add(dir.X, dir.Y)
		}
	}
	return moves
}

func stepMoves(b *Board, p Piece, dirs []Position) []Move {
	var moves []Move
	for _, dir := range dirs {
		target := p.Position.Add(dir.X, dir.Y)
		if !target.OnBoard() {
			continue
		}
		occupant := b.pieceAt(target)
		if occupant == nil || occupant.Color != p.Color {
			moves = append(moves, newMove(p, target, occupant))
		}
	}
	return moves
}

func pawnMoves(b *Board, p Piece) []Move {
	var moves []Move
	dy := p.Color.forward()

	one := p.Position.Add(0, dy)
	if one.OnBoard() && b.pieceAt(one) == nil {
		moves = append(moves, newMove(p, one, nil))
		two := p.Position.Add(0, 2*dy)
		if two.OnBoard() && b.pieceAt(two) == nil && p.Moves == 0 {
			moves = append(moves, newMove(p, two, nil))
		}
	}

	for _, dx := range []int{-1, 1} {
		target := p.Position.Add(dx, dy)
		if !target.OnBoard() {
			continue
		}
		if occupant := b.pieceAt(target); occupant != nil && occupant.Color != p.Color {
			moves = append(moves, newMove(p, target, occupant))
		}
	}

	// En passant is only possible from the row an enemy double step lands
	// next to: row 3 for white, row 4 for black.
	if (p.Color == White && p.Position.Y == 3) || (p.Color == Black && p.Position.Y == 4) {
		for _, dx := range []int{-1, 1} {
			beside := b.pieceAt(p.Position.Add(dx, 0))
			if beside != nil && beside.Type == Pawn && beside.Color != p.Color && beside.EnPassant {
				moves = append(moves, newMove(p, p.Position.Add(dx, dy), beside))
			}
		}
	}
	return moves
}

// castleMoves does not test whether the king passes over an attacked
// square. Only the king's current square and its destination are checked.
func castleMoves(b *Board, king Piece) []Move {
	if king.Moves != 0 {
		return nil
	}
	if b.inCheck != nil && b.inCheck.ID == king.ID {
		return nil
	}

	var moves []Move
	x, y := king.Position.X, king.Position.Y
	for _, rook := range b.pieces {
		if rook.Color != king.Color || rook.Type != Rook || rook.Moves != 0 || rook.Position.Y != y {
			continue
		}
		switch rook.Position.X {
		case 7:
			if corridorEmpty(b, y, x+1, 7) {
				moves = append(moves, Move{
					Piece:  king,
					To:     Position{X: x + 2, Y: y},
					Castle: &CastleRook{Rook: rook, To: Position{X: x + 1, Y: y}},
				})
			}
		case 0:
			if corridorEmpty(b, y, 1, x) {
				moves = append(moves, Move{
					Piece:  king,
					To:     Position{X: x - 2, Y: y},
					Castle: &CastleRook{Rook: rook, To: Position{X: x - 1, Y: y}},
				})
			}
		}
	}
	return moves
}

// corridorEmpty reports whether row y is empty on files [from, to).
func corridorEmpty(b *Board, y, from, to int) bool {
	for x := from; x < to; x++ {
		if b.grid[y][x] != 0 {
			return false
		}
	}
	return true
}
