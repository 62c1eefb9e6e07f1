package model

import "github.com/benbeisheim/chess-ai-backend/internal/engine"

// WSMove is a move request from a client. Promotion is only read when a
// pawn reaches its last row; empty means a queen.
type WSMove struct {
	From      engine.Position  `json:"from"`
	To        engine.Position  `json:"to"`
	Promotion engine.PieceType `json:"promotion,omitempty"`
}

type CastleRookMove struct {
	From engine.Position `json:"from"`
	To   engine.Position `json:"to"`
}

type Ply struct {
	Piece          *Piece           `json:"piece"`
	From           engine.Position  `json:"from"`
	To             engine.Position  `json:"to"`
	CapturedPiece  *Piece           `json:"capturedPiece"`
	CastleRookMove *CastleRookMove  `json:"castleRookMove"`
	Promotion      engine.PieceType `json:"promotion,omitempty"`
	Notation       string           `json:"notation"`
	UCI            string           `json:"uci"`
}

// Move pairs a white ply with the black reply, if any.
type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From engine.Position `json:"from"`
	To   engine.Position `json:"to"`
}

func pairPlies(plies []Ply) []Move {
	moves := make([]Move, 0, (len(plies)+1)/2)
	for i := range plies {
		// copied so the result does not alias the game's own slice
		p := new(Ply)
		*p = plies[i]
		if p.Piece.Color == engine.White || len(moves) == 0 {
			moves = append(moves, Move{})
		}
		last := &moves[len(moves)-1]
		if p.Piece.Color == engine.White {
			last.WhitePly = p
		} else {
			last.BlackPly = p
		}
	}
	return moves
}
