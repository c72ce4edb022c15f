package domain

import "fmt"

// MoveRow is one entry of the move list.
type MoveRow struct {
	Index       int    `json:"index"`
	Label       string `json:"label"`
	IsCurrent   bool   `json:"isCurrent"`
	CurrentText string `json:"currentText,omitempty"`
}

// ViewCell is a board cell prepared for display.
type ViewCell struct {
	Index   int    `json:"index"`
	Mark    string `json:"mark"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Winning bool   `json:"winning"`
}

// View is the read-only projection of a Game consumed by renderers.
type View struct {
	Status      string    `json:"status"`
	Outcome     Outcome   `json:"outcome"`
	Board       Board     `json:"-"`
	Cells       []string  `json:"board"`
	WinningLine []int     `json:"winningLine"`
	Moves       []MoveRow `json:"moves"`
	SortOrder   SortOrder `json:"-"`
	Order       string    `json:"sortOrder"`
	SortToggle  string    `json:"sortToggle"`
	CurrentMove int       `json:"currentMove"`
}

// View computes the projection of the viewed position. Nothing is cached.
func (g *Game) View() View {
	board := g.Current()
	win := Evaluate(board)

	v := View{
		Outcome:     OutcomeOf(board),
		Board:       board,
		Cells:       make([]string, Size),
		WinningLine: []int{},
		SortOrder:   g.order,
		Order:       g.order.String(),
		CurrentMove: g.current,
	}
	for i, c := range board {
		v.Cells[i] = c.String()
	}

	switch {
	case win != nil:
		v.Status = "Winner: " + win.Winner.String()
		v.WinningLine = append(v.WinningLine, win.Line[:]...)
	case board.Full():
		v.Status = "Draw!"
	default:
		v.Status = "Next player: " + g.Next().String()
	}

	if g.order == Ascending {
		v.SortToggle = "Sort moves descending"
	} else {
		v.SortToggle = "Sort moves ascending"
	}

	v.Moves = make([]MoveRow, len(g.history))
	for m, step := range g.history {
		v.Moves[m] = moveRow(m, step, m == g.current)
	}
	if g.order == Descending {
		for i, j := 0, len(v.Moves)-1; i < j; i, j = i+1, j-1 {
			v.Moves[i], v.Moves[j] = v.Moves[j], v.Moves[i]
		}
	}
	return v
}

// LabelPlayer is the letter shown next to history entry m. Even entries show O
// and odd entries show X; this is the long-standing display convention and is
// kept as is.
func LabelPlayer(m int) string {
	if m%2 == 0 {
		return "O"
	}
	return "X"
}

func moveRow(m int, step Move, current bool) MoveRow {
	row := MoveRow{Index: m, IsCurrent: current, Label: "Go to game start"}
	player := LabelPlayer(m)
	if m > 0 && step.LastMove != NoMove {
		r, c := RowCol(step.LastMove)
		row.Label = fmt.Sprintf("Go to move #%d - %s at (%d, %d)", m, player, r, c)
	}
	if current {
		if m == 0 {
			row.CurrentText = "You are at move #0"
		} else {
			row.CurrentText = fmt.Sprintf("You are at move #%d (%s)", m, player)
		}
	}
	return row
}

// Rows groups the board into three display rows.
func (v View) Rows() [][]ViewCell {
	rows := make([][]ViewCell, 3)
	for r := range rows {
		rows[r] = make([]ViewCell, 3)
		for c := range rows[r] {
			idx := r*3 + c
			rows[r][c] = ViewCell{
				Index:   idx,
				Mark:    v.Board[idx].String(),
				Row:     r + 1,
				Col:     c + 1,
				Winning: v.Winning(idx),
			}
		}
	}
	return rows
}

// Winning reports whether idx is highlighted.
func (v View) Winning(idx int) bool {
	for _, i := range v.WinningLine {
		if i == idx {
			return true
		}
	}
	return false
}
