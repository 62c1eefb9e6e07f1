package model

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chess-ai-backend/internal/engine"
)

const owner = "player-1"

func square(t *testing.T, name string) engine.Position {
	t.Helper()
	p, ok := engine.ParseSquare(name)
	if !ok {
		t.Fatalf("invalid square %q", name)
	}
	return p
}

func wsMove(t *testing.T, uci string) WSMove {
	t.Helper()
	return WSMove{From: square(t, uci[:2]), To: square(t, uci[2:4])}
}

func newLocalGame(t *testing.T) *Game {
	t.Helper()
	opts, err := Options{Mode: ModeLocal}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewGame("local", owner, opts, 0)
}

func newAIGame(t *testing.T, color engine.Color) *Game {
	t.Helper()
	opts, err := Options{Mode: ModeAI, AIColor: color}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts.Depth = 1
	return NewGame("ai", owner, opts, 0)
}

func playAll(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		if err := g.MakeMove(owner, wsMove(t, mv)); err != nil {
			t.Fatalf("move %s: %v", mv, err)
		}
	}
}

func TestOptionsNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Options
		want    Options
		wantErr bool
	}{
		{"defaults", Options{}, Options{Mode: ModeAI, AIColor: engine.Black, Difficulty: DifficultyEasy}, false},
		{"local drops ai fields", Options{Mode: ModeLocal, AIColor: engine.White, Difficulty: DifficultyHard}, Options{Mode: ModeLocal}, false},
		{"ai white hard", Options{Mode: ModeAI, AIColor: engine.White, Difficulty: DifficultyHard}, Options{Mode: ModeAI, AIColor: engine.White, Difficulty: DifficultyHard}, false},
		{"bad mode", Options{Mode: "online"}, Options{}, true},
		{"bad color", Options{AIColor: "red"}, Options{}, true},
		{"bad difficulty", Options{Difficulty: "impossible"}, Options{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOption) {
					t.Fatalf("expected ErrInvalidOption, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestNewGameState(t *testing.T) {
	g := newAIGame(t, engine.Black)
	st := g.GetState()

	if st.ToMove != engine.White || st.Ply != 0 || st.Resolve != nil || st.IsCheck {
		t.Fatalf("unexpected initial state: %+v", st)
	}
	if st.FEN != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" {
		t.Fatalf("unexpected FEN %s", st.FEN)
	}
	if st.Board.Board[7][4] == nil || st.Board.Board[7][4].Type != engine.King {
		t.Fatalf("expected the white king on e1")
	}
	if st.Board.WhiteKingPosition != square(t, "e1") || st.Board.BlackKingPosition != square(t, "e8") {
		t.Fatalf("unexpected king positions %+v", st.Board)
	}
	if !st.Players.Black.Computer || st.Players.White.ID != owner {
		t.Fatalf("unexpected players %+v", st.Players)
	}
	if st.AI == nil || st.AI.Color != engine.Black || st.AI.Depth != 1 {
		t.Fatalf("unexpected ai config %+v", st.AI)
	}
}

func TestMakeMoveRejects(t *testing.T) {
	tests := []struct {
		name   string
		player string
		move   WSMove
		want   error
	}{
		{"stranger", "someone-else", WSMove{From: engine.Position{X: 4, Y: 6}, To: engine.Position{X: 4, Y: 4}}, ErrNotInGame},
		{"off board", owner, WSMove{From: engine.Position{X: 4, Y: 6}, To: engine.Position{X: 4, Y: 8}}, ErrOutOfBounds},
		{"empty square", owner, WSMove{From: engine.Position{X: 4, Y: 4}, To: engine.Position{X: 4, Y: 3}}, ErrNoPiece},
		{"black piece", owner, WSMove{From: engine.Position{X: 4, Y: 1}, To: engine.Position{X: 4, Y: 3}}, ErrNotYourTurn},
		{"illegal", owner, WSMove{From: engine.Position{X: 4, Y: 6}, To: engine.Position{X: 4, Y: 3}}, ErrIllegalMove},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newLocalGame(t)
			if err := g.MakeMove(tt.player, tt.move); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if st := g.GetState(); st.Ply != 0 {
				t.Fatalf("rejected move changed the game")
			}
		})
	}
}

func TestMakeMoveRecordsHistory(t *testing.T) {
	g := newLocalGame(t)
	playAll(t, g, "e2e4", "d7d5", "e4d5")

	st := g.GetState()
	if st.Ply != 3 || st.ToMove != engine.Black {
		t.Fatalf("expected black to move at ply 3, got %s at %d", st.ToMove, st.Ply)
	}
	if len(st.MoveHistory) != 2 {
		t.Fatalf("expected 2 move pairs, got %d", len(st.MoveHistory))
	}
	first := st.MoveHistory[0]
	if first.WhitePly.Notation != "e4" || first.BlackPly.Notation != "d5" {
		t.Fatalf("unexpected first move %s %s", first.WhitePly.Notation, first.BlackPly.Notation)
	}
	second := st.MoveHistory[1]
	if second.WhitePly.Notation != "exd5" || second.BlackPly != nil {
		t.Fatalf("unexpected second move %+v", second)
	}
	if second.WhitePly.UCI != "e4d5" {
		t.Fatalf("expected e4d5, got %s", second.WhitePly.UCI)
	}
	if len(st.CapturedPieces.White) != 1 || st.CapturedPieces.White[0].Type != engine.Pawn {
		t.Fatalf("expected white to have captured a pawn, got %+v", st.CapturedPieces)
	}
	if st.Sound != "capture" {
		t.Fatalf("expected capture sound, got %q", st.Sound)
	}
	if st.LastMove == nil || st.LastMove.To != square(t, "d5") {
		t.Fatalf("unexpected last move %+v", st.LastMove)
	}
}

func TestCastlingIsRecorded(t *testing.T) {
	g := newLocalGame(t)
	playAll(t, g, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1")

	ply := g.GetState().MoveHistory[3].WhitePly
	if ply.Notation != "O-O" {
		t.Fatalf("expected O-O, got %s", ply.Notation)
	}
	if ply.CastleRookMove == nil || ply.CastleRookMove.From != square(t, "h1") || ply.CastleRookMove.To != square(t, "f1") {
		t.Fatalf("unexpected rook move %+v", ply.CastleRookMove)
	}
}

func TestPromotionChoice(t *testing.T) {
	g := newLocalGame(t)
	playAll(t, g, "a2a4", "b7b5", "a4b5", "a7a6", "b5a6", "c8b7", "a6b7", "b8c6")

	move := wsMove(t, "b7a8")
	move.Promotion = engine.Knight
	if err := g.MakeMove(owner, move); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := g.GetState()
	if p := st.Board.Board[0][0]; p == nil || p.Type != engine.Knight || p.Color != engine.White {
		t.Fatalf("expected a white knight on a8, got %+v", p)
	}
	ply := st.MoveHistory[4].WhitePly
	if ply.Promotion != engine.Knight || ply.Notation != "bxa8=N" {
		t.Fatalf("unexpected promotion ply %+v", ply)
	}
}

func TestCheckmateEndsGame(t *testing.T) {
	g := newLocalGame(t)
	playAll(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	st := g.GetState()
	if st.Resolve == nil || *st.Resolve != "checkmate" {
		t.Fatalf("expected checkmate, got %v", st.Resolve)
	}
	if !st.IsCheck || st.Sound != "check" {
		t.Fatalf("expected check, got isCheck=%v sound=%q", st.IsCheck, st.Sound)
	}
	if st.MoveHistory[1].BlackPly.Notation != "Qh4#" {
		t.Fatalf("expected Qh4#, got %s", st.MoveHistory[1].BlackPly.Notation)
	}
	if err := g.MakeMove(owner, wsMove(t, "a2a3")); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}

	if err := g.Undo(owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st := g.GetState(); st.Resolve != nil || st.Ply != 3 {
		t.Fatalf("undo should reopen the game at ply 3, got %+v", st.Resolve)
	}
}

func TestUndoLocal(t *testing.T) {
	g := newLocalGame(t)
	if err := g.Undo(owner); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}

	playAll(t, g, "e2e4", "e7e5")
	before := g.GetState()
	if err := g.Undo("someone-else"); !errors.Is(err, ErrNotInGame) {
		t.Fatalf("expected ErrNotInGame, got %v", err)
	}
	if err := g.Undo(owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := g.GetState()
	if st.Ply != 1 || st.ToMove != engine.Black {
		t.Fatalf("expected black to move at ply 1, got %s at %d", st.ToMove, st.Ply)
	}
	if len(st.MoveHistory) != 1 || st.MoveHistory[0].BlackPly != nil {
		t.Fatalf("expected only e4 in the history")
	}
	if before.MoveHistory[0].BlackPly == nil {
		t.Fatalf("earlier state must not change after undo")
	}
}

func TestLegalMoves(t *testing.T) {
	g := newLocalGame(t)

	got, err := g.LegalMoves(square(t, "e2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected e3 and e4, got %v", got)
	}

	got, err = g.LegalMoves(square(t, "e7"))
	if err != nil || len(got) != 0 {
		t.Fatalf("black pieces have no moves on white's turn, got %v %v", got, err)
	}
	if _, err := g.LegalMoves(square(t, "e4")); !errors.Is(err, ErrNoPiece) {
		t.Fatalf("expected ErrNoPiece, got %v", err)
	}
	if _, err := g.LegalMoves(engine.Position{X: 9, Y: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestLegalMovesHidesComputerPieces(t *testing.T) {
	g := newAIGame(t, engine.White)

	got, err := g.LegalMoves(square(t, "e2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no moves for the computer's pawn, got %v", got)
	}
}

func TestAIReplies(t *testing.T) {
	g := newAIGame(t, engine.Black)
	playAll(t, g, "e2e4")
	g.Wait()

	st := g.GetState()
	if st.Ply != 2 || st.ToMove != engine.White || st.Thinking {
		t.Fatalf("expected the reply to be played, got ply %d thinking=%v", st.Ply, st.Thinking)
	}
	if reply := st.MoveHistory[0].BlackPly; reply == nil || reply.Piece.Color != engine.Black {
		t.Fatalf("expected a black reply, got %+v", reply)
	}
}

func TestAIOpensAsWhite(t *testing.T) {
	g := newAIGame(t, engine.White)
	if err := g.MakeMove(owner, wsMove(t, "e2e4")); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}

	g.Start()
	g.Wait()
	st := g.GetState()
	if st.Ply != 1 || st.ToMove != engine.Black {
		t.Fatalf("expected the computer to have opened, got ply %d", st.Ply)
	}

	// Nothing of the owner's to take back yet.
	if err := g.Undo(owner); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestUndoAgainstAI(t *testing.T) {
	g := newAIGame(t, engine.Black)
	playAll(t, g, "e2e4")
	g.Wait()
	playAll(t, g, "d2d4")
	g.Wait()

	if err := g.Undo(owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := g.GetState()
	if st.Ply != 2 || st.ToMove != engine.White {
		t.Fatalf("expected white to move at ply 2, got %s at %d", st.ToMove, st.Ply)
	}
}

// Whether or not the reply lands before the undo, the owner ends up back
// at the start with the move to play.
func TestUndoWhileThinkingDiscardsReply(t *testing.T) {
	g := newAIGame(t, engine.Black)
	playAll(t, g, "e2e4")
	if err := g.Undo(owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.Wait()

	st := g.GetState()
	if st.Ply != 0 || st.ToMove != engine.White || st.Thinking {
		t.Fatalf("expected the start position, got ply %d thinking=%v", st.Ply, st.Thinking)
	}
	if len(st.MoveHistory) != 0 {
		t.Fatalf("expected an empty history, got %d moves", len(st.MoveHistory))
	}
}
