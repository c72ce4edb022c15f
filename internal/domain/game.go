package domain

import "errors"

// ErrMoveOutOfRange is returned by JumpTo for an index outside the history.
var ErrMoveOutOfRange = errors.New("move out of range")

// NoMove marks the initial history entry, which has no last move.
const NoMove = -1

// Move is one history entry: the board after a play and the cell that was played.
type Move struct {
	Board    Board
	LastMove int
}

// SortOrder controls how the move list is presented. It never affects History.
type SortOrder uint8

const (
	Ascending SortOrder = iota
	Descending
)

func (s SortOrder) String() string {
	if s == Descending {
		return "descending"
	}
	return "ascending"
}

// Game holds the move history of a single match and the position being viewed.
// It is not safe for concurrent use.
type Game struct {
	history []Move
	current int
	order   SortOrder
}

// New returns a game at the start position with X to move.
func New() *Game {
	return &Game{history: []Move{{LastMove: NoMove}}}
}

// Len returns the number of history entries, including the start position.
func (g *Game) Len() int { return len(g.history) }

// CurrentMove returns the index of the viewed history entry.
func (g *Game) CurrentMove() int { return g.current }

// Current returns the viewed board.
func (g *Game) Current() Board { return g.history[g.current].Board }

// SortOrder returns the move list presentation order.
func (g *Game) SortOrder() SortOrder { return g.order }

// History returns a copy of the history.
func (g *Game) History() []Move {
	out := make([]Move, len(g.history))
	copy(out, g.history)
	return out
}

// Next returns the mark that plays from the viewed position.
func (g *Game) Next() Cell {
	if g.current%2 == 0 {
		return X
	}
	return O
}

// Play places the next mark at idx on the viewed board. Any entries after the
// viewed one are discarded. Plays on a decided board, an occupied cell or an
// index outside the board change nothing; Play reports whether the move was applied.
func (g *Game) Play(idx int) bool {
	board := g.Current()
	if !validCell(idx) || Evaluate(board) != nil || board[idx] != Empty {
		return false
	}
	next := board.With(idx, g.Next())
	g.history = append(g.history[:g.current+1:g.current+1], Move{Board: next, LastMove: idx})
	g.current = len(g.history) - 1
	return true
}

// JumpTo views history entry m. An index outside the history returns
// ErrMoveOutOfRange and leaves the game untouched.
func (g *Game) JumpTo(m int) error {
	if m < 0 || m >= len(g.history) {
		return ErrMoveOutOfRange
	}
	g.current = m
	return nil
}

// ToggleSortOrder flips the move list order.
func (g *Game) ToggleSortOrder() {
	if g.order == Ascending {
		g.order = Descending
	} else {
		g.order = Ascending
	}
}
