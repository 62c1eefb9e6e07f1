package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/chess-ai-backend/internal/ai"
	"github.com/benbeisheim/chess-ai-backend/internal/engine"
	"github.com/benbeisheim/chess-ai-backend/internal/notation"
	"github.com/gofiber/fiber/v2/log"
)

// The Game struct focuses on a single game's positions and its observers
type Game struct {
	ID          string
	mu          sync.Mutex
	owner       string
	options     Options
	players     Players
	history     *engine.History
	plies       []Ply
	resolve     *string
	version     int // bumped on every move and undo
	thinking    bool
	pending     sync.WaitGroup
	connections *GameConnections
}

type GameState struct {
	ID             string               `json:"id"`
	Mode           Mode                 `json:"mode"`
	Sound          string               `json:"sound"`
	Board          *BoardState          `json:"boardState"`
	ToMove         engine.Color         `json:"toMove"`
	Ply            int                  `json:"ply"`
	MoveHistory    []Move               `json:"moveHistory"`
	CapturedPieces CapturedPieces       `json:"capturedPieces"`
	IsCheck        bool                 `json:"isCheck"`
	Resolve        *string              `json:"resolve"`
	Players        Players              `json:"players"`
	LastMove       *SimpleMove          `json:"lastMove"`
	FEN            string               `json:"fen"`
	AI             *engine.SearchConfig `json:"ai"`
	Thinking       bool                 `json:"thinking"`
}

// CapturedPieces lists pieces by the side that captured them.
type CapturedPieces struct {
	White []*Piece `json:"white"`
	Black []*Piece `json:"black"`
}

// NewGame starts a game from the standard position. opts must already be
// normalized. A positive maxHistory bounds how far back undo can go.
func NewGame(id, owner string, opts Options, maxHistory int) *Game {
	board := engine.NewBoard(true)
	if opts.Mode == ModeAI {
		board.SetAI(&engine.SearchConfig{Color: opts.AIColor, Depth: opts.Depth})
	}
	return &Game{
		ID:          id,
		owner:       owner,
		options:     opts,
		players:     newPlayers(owner, opts),
		history:     engine.NewHistory(board, maxHistory),
		plies:       make([]Ply, 0),
		connections: NewGameConnections(),
	}
}

// Start lets the automated side open the game when it plays white.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.scheduleAI()
}

// Wait blocks until no automated reply is being computed.
func (g *Game) Wait() {
	g.pending.Wait()
}

func (g *Game) Owner() string {
	return g.owner
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state()
}

func (g *Game) MakeMove(playerID string, move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerID != g.owner {
		return ErrNotInGame
	}
	if g.resolve != nil {
		return ErrGameOver
	}
	if !move.From.OnBoard() || !move.To.OnBoard() {
		return ErrOutOfBounds
	}

	b := g.history.Current()
	piece, ok := b.PieceAt(move.From)
	if !ok {
		return ErrNoPiece
	}
	if piece.Color != b.Turn() {
		return ErrNotYourTurn
	}
	if cfg := b.AI(); cfg != nil && cfg.Color == b.Turn() {
		return ErrNotYourTurn
	}

	var chosen *engine.Move
	for _, m := range engine.ValidMoves(b, piece, true) {
		if m.To == move.To {
			chosen = &m
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("%w: %s %s-%s", ErrIllegalMove, piece.Type, move.From, move.To)
	}

	g.apply(*chosen, engine.PromoteTo(move.Promotion))
	g.scheduleAI()
	g.publish()
	return nil
}

// Undo takes back the last ply of a local game. Against the automated side
// it returns to the last position where the owner was to move, which also
// discards a reply still being computed.
func (g *Game) Undo(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if playerID != g.owner {
		return ErrNotInGame
	}

	steps := 1
	b := g.history.Current()
	if cfg := b.AI(); cfg != nil && cfg.Color != b.Turn() {
		steps = 2
	}
	if g.history.Undoable() < steps {
		return ErrNothingToUndo
	}
	for i := 0; i < steps; i++ {
		g.history.Undo()
		g.plies = g.plies[:len(g.plies)-1]
	}
	g.version++
	g.resolve = nil
	g.thinking = false

	log.Debugf("game %s: undid %d plies, now at ply %d", g.ID, steps, g.history.Current().Ply())
	g.publish()
	return nil
}

// LegalMoves returns the destinations of the piece on pos. Pieces of the
// side not to move have none, and neither do the computer's pieces.
func (g *Game) LegalMoves(pos engine.Position) ([]engine.Position, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !pos.OnBoard() {
		return nil, ErrOutOfBounds
	}
	b := g.history.Current()
	piece, ok := b.PieceAt(pos)
	if !ok {
		return nil, ErrNoPiece
	}

	dests := make([]engine.Position, 0)
	if piece.Color != b.Turn() || g.resolve != nil {
		return dests, nil
	}
	if cfg := b.AI(); cfg != nil && b.Turn() == cfg.Color {
		return dests, nil
	}
	for _, m := range engine.ValidMoves(b, piece, true) {
		dests = append(dests, m.To)
	}
	return dests, nil
}

// apply plays m on the current position and records it. The caller holds
// g.mu.
func (g *Game) apply(m engine.Move, promote engine.PromotionProvider) {
	before := g.history.Current()
	next := before.Play(m, promote)

	ply := Ply{
		Piece: newPiece(m.Piece),
		From:  m.From(),
		To:    m.To,
	}
	if m.Captured != nil {
		ply.CapturedPiece = newPiece(*m.Captured)
	}
	if m.Castle != nil {
		ply.CastleRookMove = &CastleRookMove{From: m.Castle.Rook.Position, To: m.Castle.To}
	}
	if m.IsPromotion() {
		if p, ok := next.PieceAt(m.To); ok {
			ply.Promotion = p.Type
		}
	}
	ply.UCI = notation.UCI(m, ply.Promotion)
	san, err := notation.SAN(before, m, ply.Promotion)
	if err != nil {
		log.Warnf("game %s: no notation for %s: %v", g.ID, ply.UCI, err)
		san = ply.UCI
	}
	ply.Notation = san

	g.history.Push(next)
	g.plies = append(g.plies, ply)
	g.version++
	g.resolve = resolve(next)
	if g.resolve != nil {
		log.Infof("game %s: %s after %s", g.ID, *g.resolve, ply.Notation)
	}
}

func resolve(b *engine.Board) *string {
	if !b.GameOver() {
		return nil
	}
	result := "stalemate"
	if _, ok := b.InCheck(); ok {
		result = "checkmate"
	}
	return &result
}

// scheduleAI searches for the automated side's reply in the background when
// it is to move. The reply is only played if nothing changed the game in
// the meantime. The caller holds g.mu.
func (g *Game) scheduleAI() {
	b := g.history.Current()
	cfg := b.AI()
	if cfg == nil || g.resolve != nil || b.Turn() != cfg.Color {
		return
	}

	g.thinking = true
	version := g.version
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()

		s := ai.NewSearcher(*cfg)
		m, ok := s.GetMove(b)

		g.mu.Lock()
		defer g.mu.Unlock()
		if g.version != version {
			log.Debugf("game %s: discarding stale reply", g.ID)
			return
		}
		g.thinking = false
		if !ok {
			log.Warnf("game %s: no reply found at ply %d", g.ID, b.Ply())
			return
		}
		g.apply(m, nil)
		g.publish()
	}()
}

func (g *Game) state() GameState {
	b := g.history.Current()
	st := GameState{
		ID:             g.ID,
		Mode:           g.options.Mode,
		Board:          newBoardState(b),
		ToMove:         b.Turn(),
		Ply:            b.Ply(),
		MoveHistory:    pairPlies(g.plies),
		CapturedPieces: capturedPieces(g.plies),
		Resolve:        g.resolve,
		Players:        g.players,
		FEN:            notation.FEN(b),
		AI:             b.AI(),
		Thinking:       g.thinking,
	}
	_, st.IsCheck = b.InCheck()

	if n := len(g.plies); n > 0 {
		last := g.plies[n-1]
		st.LastMove = &SimpleMove{From: last.From, To: last.To}
		switch {
		case st.IsCheck:
			st.Sound = "check"
		case last.CapturedPiece != nil:
			st.Sound = "capture"
		default:
			st.Sound = "move"
		}
	}
	return st
}

func capturedPieces(plies []Ply) CapturedPieces {
	captured := CapturedPieces{
		White: make([]*Piece, 0),
		Black: make([]*Piece, 0),
	}
	for _, p := range plies {
		if p.CapturedPiece == nil {
			continue
		}
		c := *p.CapturedPiece
		if p.Piece.Color == engine.White {
			captured.White = append(captured.White, &c)
		} else {
			captured.Black = append(captured.Black, &c)
		}
	}
	return captured
}

// publish sends the current state to every observer. The caller holds
// g.mu, which keeps states in order.
func (g *Game) publish() {
	payload, err := json.Marshal(g.state())
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return
	}
	g.connections.broadcast(payload)
}
