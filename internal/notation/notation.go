// Package notation renders engine positions and moves in standard chess
// text formats (FEN, UCI and SAN) using corentings/chess.
package notation

import (
	"fmt"
	"strings"

	"github.com/benbeisheim/chess-ai-backend/internal/engine"
	chess "github.com/corentings/chess/v2"
)

var pieceTypes = map[engine.PieceType]chess.PieceType{
	engine.King:   chess.King,
	engine.Queen:  chess.Queen,
	engine.Rook:   chess.Rook,
	engine.Bishop: chess.Bishop,
	engine.Knight: chess.Knight,
	engine.Pawn:   chess.Pawn,
}

func toSquare(p engine.Position) chess.Square {
	return chess.NewSquare(chess.File(p.X), chess.Rank(7-p.Y))
}

func toColor(c engine.Color) chess.Color {
	if c == engine.White {
		return chess.White
	}
	return chess.Black
}

// FEN describes b in Forsyth-Edwards Notation. The half-move clock is not
// tracked and is always 0.
func FEN(b *engine.Board) string {
	squares := make(map[chess.Square]chess.Piece)
	for _, p := range b.Pieces() {
		squares[toSquare(p.Position)] = chess.NewPiece(pieceTypes[p.Type], toColor(p.Color))
	}
	placement := chess.NewBoard(squares).String()

	turn := "w"
	if b.Turn() == engine.Black {
		turn = "b"
	}
	return fmt.Sprintf("%s %s %s %s 0 %d", placement, turn, castleRights(b), enPassantTarget(b), b.Ply()/2+1)
}

func castleRights(b *engine.Board) string {
	var sb strings.Builder
	for _, side := range []struct {
		color engine.Color
		row   int
		king  string
		queen string
	}{
		{engine.White, 7, "K", "Q"},
		{engine.Black, 0, "k", "q"},
	} {
		king, ok := b.PieceAt(engine.Position{X: 4, Y: side.row})
		if !ok || king.Type != engine.King || king.Color != side.color || king.HasMoved() {
			continue
		}
		if unmovedRook(b, side.color, engine.Position{X: 7, Y: side.row}) {
			sb.WriteString(side.king)
		}
		if unmovedRook(b, side.color, engine.Position{X: 0, Y: side.row}) {
			sb.WriteString(side.queen)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

func unmovedRook(b *engine.Board, c engine.Color, pos engine.Position) bool {
	p, ok := b.PieceAt(pos)
	return ok && p.Type == engine.Rook && p.Color == c && !p.HasMoved()
}

// enPassantTarget is the square behind a pawn of the side that just moved
// if that pawn still carries its double-step flag.
func enPassantTarget(b *engine.Board) string {
	mover := b.Turn().Opponent()
	for _, p := range b.Pieces() {
		if p.Type == engine.Pawn && p.Color == mover && p.EnPassant {
			behind := p.Position
			if mover == engine.White {
				behind.Y++
			} else {
				behind.Y--
			}
			return behind.String()
		}
	}
	return "-"
}

// UCI returns the long algebraic form of m, e.g. "e2e4" or "a7a8q".
// promotion is the piece a promoting pawn became and is ignored otherwise.
func UCI(m engine.Move, promotion engine.PieceType) string {
	s := m.From().String() + m.To.String()
	if m.IsPromotion() {
		if promotion == "" || promotion == engine.Pawn {
			promotion = engine.Queen
		}
		s += strings.ToLower(promotion.Notation())
	}
	return s
}

// SAN returns the standard algebraic notation of m played on before,
// including check and mate suffixes.
func SAN(before *engine.Board, m engine.Move, promotion engine.PieceType) (string, error) {
	opt, err := chess.FEN(FEN(before))
	if err != nil {
		return "", fmt.Errorf("encode position: %w", err)
	}
	pos := chess.NewGame(opt).Position()

	// Generated moves carry the castle and check tags that a decoded move lacks.
	from, to, promo := toSquare(m.From()), toSquare(m.To), chess.NoPieceType
	if m.IsPromotion() {
		if promotion == "" || promotion == engine.Pawn {
			promotion = engine.Queen
		}
		promo = pieceTypes[promotion]
	}
	for _, mv := range pos.ValidMoves() {
		if mv.S1() == from && mv.S2() == to && mv.Promo() == promo {
			return chess.AlgebraicNotation{}.Encode(pos, &mv), nil
		}
	}

	// The library rejects castling through an attacked square, which the
	// engine allows.
	mv, err := chess.UCINotation{}.Decode(pos, UCI(m, promotion))
	if err != nil {
		return "", fmt.Errorf("decode move: %w", err)
	}
	return chess.AlgebraicNotation{}.Encode(pos, mv), nil
}
