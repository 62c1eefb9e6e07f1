package ai

import (
	"math"

	"github.com/benbeisheim/chess-ai-backend/internal/engine"
)

// PieceValue grows with the cube of the piece rank: 100 for a pawn up to
// 21600 for the king.
func PieceValue(t engine.PieceType) int {
	r := t.Rank() + 1
	return r * r * r * 100
}

// Evaluate scores b for side. Material counts for both colours, but
// mobility and threatened material are only known for the side to move, so
// they are added when side is to move and subtracted otherwise. A side to
// move with no legal moves scores as a loss or a win outright, mate or not.
func Evaluate(b *engine.Board, side engine.Color) int {
	material := 0
	for _, p := range b.Pieces() {
		if p.Color == side {
			material += PieceValue(p.Type)
		} else {
			material -= PieceValue(p.Type)
		}
	}

	toMove := b.Turn()
	moves := b.LegalMoves(toMove)
	if len(moves) == 0 {
		if toMove == side {
			return math.MinInt
		}
		return math.MaxInt
	}

	activity := len(moves)
	for _, m := range moves {
		if m.Captured != nil {
			activity += PieceValue(m.Captured.Type)
		}
	}
	if toMove != side {
		activity = -activity
	}
	return material + activity
}
