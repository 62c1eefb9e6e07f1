package model

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrOutOfBounds   = errors.New("invalid move, out of bounds")
	ErrIllegalMove   = errors.New("invalid move, not legal")
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrInvalidOption = errors.New("invalid game option")
)
