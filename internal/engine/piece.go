package engine

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn advance. White starts on row 6 and
// moves towards row 0.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

type PieceType string

const (
	Pawn   PieceType = "pawn"
	Knight PieceType = "knight"
	Bishop PieceType = "bishop"
	Rook   PieceType = "rook"
	Queen  PieceType = "queen"
	King   PieceType = "king"
)

// Rank is the relative value index of a piece kind: 0 for a pawn up to 5
// for the king.
func (t PieceType) Rank() int {
	switch t {
	case Pawn:
		return 0
	case Knight:
		return 1
	case Bishop:
		return 2
	case Rook:
		return 3
	case Queen:
		return 4
	case King:
		return 5
	}
	return -1
}

func (t PieceType) Notation() string {
	switch t {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Piece is a value; boards never share pieces. ID is stable for the life
// of the piece on a board and its clones, and is how moves refer to it.
type Piece struct {
	ID        int       `json:"id"`
	Type      PieceType `json:"type"`
	Color     Color     `json:"color"`
	Position  Position  `json:"position"`
	Moves     int       `json:"moves"`
	EnPassant bool      `json:"enPassant,omitempty"`
}

func (p Piece) HasMoved() bool {
	return p.Moves > 0
}
