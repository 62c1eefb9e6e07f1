package model

import (
	"fmt"

	"github.com/benbeisheim/chess-ai-backend/internal/engine"
)

type Mode string

const (
	// ModeAI pits the owner against the automated side.
	ModeAI Mode = "ai"
	// ModeLocal has the owner play both colours from one client.
	ModeLocal Mode = "local"
)

type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

// Options configure a new game. Depth is the search depth already resolved
// from Difficulty.
type Options struct {
	Mode       Mode         `json:"mode"`
	AIColor    engine.Color `json:"aiColor"`
	Difficulty Difficulty   `json:"difficulty"`
	Depth      int          `json:"-"`
}

// Normalize fills defaults and rejects unknown values.
func (o Options) Normalize() (Options, error) {
	if o.Mode == "" {
		o.Mode = ModeAI
	}
	switch o.Mode {
	case ModeLocal:
		o.AIColor, o.Difficulty, o.Depth = "", "", 0
		return o, nil
	case ModeAI:
	default:
		return o, fmt.Errorf("%w: mode %q", ErrInvalidOption, o.Mode)
	}

	if o.AIColor == "" {
		o.AIColor = engine.Black
	}
	if o.AIColor != engine.White && o.AIColor != engine.Black {
		return o, fmt.Errorf("%w: aiColor %q", ErrInvalidOption, o.AIColor)
	}
	if o.Difficulty == "" {
		o.Difficulty = DifficultyEasy
	}
	if o.Difficulty != DifficultyEasy && o.Difficulty != DifficultyHard {
		return o, fmt.Errorf("%w: difficulty %q", ErrInvalidOption, o.Difficulty)
	}
	return o, nil
}

type ClientPlayer struct {
	ID       string       `json:"name"`
	Color    engine.Color `json:"color"`
	Computer bool         `json:"computer"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

const computerName = "computer"

func newPlayers(owner string, opts Options) Players {
	players := Players{
		White: ClientPlayer{ID: owner, Color: engine.White},
		Black: ClientPlayer{ID: owner, Color: engine.Black},
	}
	switch {
	case opts.Mode != ModeAI:
	case opts.AIColor == engine.White:
		players.White = ClientPlayer{ID: computerName, Color: engine.White, Computer: true}
	default:
		players.Black = ClientPlayer{ID: computerName, Color: engine.Black, Computer: true}
	}
	return players
}
