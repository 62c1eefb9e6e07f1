package model

import "github.com/benbeisheim/chess-ai-backend/internal/engine"

// BoardState is the client view of a position, indexed [y][x] with row 0
// at black's back rank.
type BoardState struct {
	Board             [][]*Piece      `json:"board"`
	BlackKingPosition engine.Position `json:"blackKingPosition"`
	WhiteKingPosition engine.Position `json:"whiteKingPosition"`
}

type Piece struct {
	ID       int              `json:"id"`
	Type     engine.PieceType `json:"type"`
	Color    engine.Color     `json:"color"`
	Position engine.Position  `json:"position"`
	HasMoved bool             `json:"hasMoved"`
}

func newPiece(p engine.Piece) *Piece {
	return &Piece{
		ID:       p.ID,
		Type:     p.Type,
		Color:    p.Color,
		Position: p.Position,
		HasMoved: p.HasMoved(),
	}
}

func newBoardState(b *engine.Board) *BoardState {
	board := &BoardState{}
	for i := 0; i < 8; i++ {
		board.Board = append(board.Board, make([]*Piece, 8))
	}
	for _, p := range b.Pieces() {
		board.Board[p.Position.Y][p.Position.X] = newPiece(p)
		if p.Type != engine.King {
			continue
		}
		switch p.Color {
		case engine.White:
			board.WhiteKingPosition = p.Position
		case engine.Black:
			board.BlackKingPosition = p.Position
		}
	}
	return board
}
