package engine

// PromotionProvider supplies the piece a human-moved pawn becomes on its
// last row. Returning false declines, which promotes to a queen.
type PromotionProvider interface {
	Promotion(pawn Piece) (PieceType, bool)
}

// PromoteTo is a PromotionProvider answering with a fixed choice. The empty
// value declines.
type PromoteTo PieceType

func (t PromoteTo) Promotion(Piece) (PieceType, bool) {
	if t == "" {
		return "", false
	}
	return PieceType(t), true
}

func isPromotionType(t PieceType) bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}
