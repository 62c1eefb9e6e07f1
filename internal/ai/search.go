package ai

import (
	"math"

	"github.com/benbeisheim/chess-ai-backend/internal/engine"
	"github.com/gofiber/fiber/v2/log"
)

const (
	DepthEasy = 2
	DepthHard = 3
)

// Stats counts the work done by the last GetMove call.
type Stats struct {
	Nodes   int
	Leaves  int
	Cutoffs int
}

// Searcher picks moves for Color with a fixed-depth minimax search and
// fail-hard alpha-beta pruning. It is not safe for concurrent use; the
// Stats of the last search are kept on it.
type Searcher struct {
	Color engine.Color
	Depth int
	Stats Stats
}

func NewSearcher(cfg engine.SearchConfig) *Searcher {
	depth := cfg.Depth
	if depth < 1 {
		depth = 1
	}
	return &Searcher{Color: cfg.Color, Depth: depth}
}

// GetMove returns the best move for the searcher's colour. It returns
// false when b is nil, when it is not the searcher's turn, or when there
// is no legal move. Among equally scored moves the first one generated
// wins, except that a move scored MinInt is replaced by the next one, so
// when every move loses the last one generated is played.
func (s *Searcher) GetMove(b *engine.Board) (engine.Move, bool) {
	if b == nil || b.Turn() != s.Color {
		return engine.Move{}, false
	}
	s.Stats = Stats{}

	var best engine.Move
	found := false
	bestValue := math.MinInt
	for _, m := range b.LegalMoves(s.Color) {
		value := s.min(b.TryMove(m), s.Depth-1, bestValue, math.MaxInt)
		if value > bestValue || bestValue == math.MinInt {
			bestValue = value
			best = m
			found = true
		}
	}

	log.Debugf("search: color=%s depth=%d nodes=%d leaves=%d cutoffs=%d value=%d",
		s.Color, s.Depth, s.Stats.Nodes, s.Stats.Leaves, s.Stats.Cutoffs, bestValue)
	return best, found
}

func (s *Searcher) max(b *engine.Board, depth, alpha, beta int) int {
	s.Stats.Nodes++
	if depth <= 0 {
		return s.leaf(b)
	}
	moves := b.LegalMoves(b.Turn())
	if len(moves) == 0 {
		return s.leaf(b)
	}
	for _, m := range moves {
		value := s.min(b.TryMove(m), depth-1, alpha, beta)
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			s.Stats.Cutoffs++
			return alpha
		}
	}
	return alpha
}

func (s *Searcher) min(b *engine.Board, depth, alpha, beta int) int {
	s.Stats.Nodes++
	if depth <= 0 {
		return s.leaf(b)
	}
	moves := b.LegalMoves(b.Turn())
	if len(moves) == 0 {
		return s.leaf(b)
	}
	for _, m := range moves {
		value := s.max(b.TryMove(m), depth-1, alpha, beta)
		if value < beta {
			beta = value
		}
		if alpha >= beta {
			s.Stats.Cutoffs++
			return beta
		}
	}
	return beta
}

func (s *Searcher) leaf(b *engine.Board) int {
	s.Stats.Leaves++
	return Evaluate(b, s.Color)
}
