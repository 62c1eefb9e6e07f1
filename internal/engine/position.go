package engine

import "fmt"

// Position is a board square. X is the file (0 = a) and Y the row, with
// row 0 holding black's back rank (rank 8) and row 7 white's.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) OnBoard() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// String returns the algebraic square name, e.g. "e4".
func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.X+'a', 8-p.Y)
}

func (p Position) File() string {
	return fmt.Sprintf("%c", p.X+'a')
}

// ParseSquare converts an algebraic square name to a Position.
func ParseSquare(s string) (Position, bool) {
	if len(s) != 2 {
		return Position{}, false
	}
	p := Position{X: int(s[0] - 'a'), Y: 8 - int(s[1]-'0')}
	if !p.OnBoard() {
		return Position{}, false
	}
	return p, true
}
