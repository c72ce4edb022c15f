package domain

// Lines lists every winning triple in evaluation order:
// rows top to bottom, columns left to right, then the two diagonals.
var Lines = [8][3]int{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// WinResult names the winning mark and the line it completed.
type WinResult struct {
	Winner Cell
	Line   [3]int
}

// Evaluate returns the first completed line on b, or nil when there is none.
// A full board with a nil result is a draw.
func Evaluate(b Board) *WinResult {
	for _, ln := range Lines {
		a := b[ln[0]]
		if a != Empty && a == b[ln[1]] && a == b[ln[2]] {
			return &WinResult{Winner: a, Line: ln}
		}
	}
	return nil
}

// Outcome is the state of the game on a given board. It is always derived, never stored.
type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "in progress"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// OutcomeOf classifies b.
func OutcomeOf(b Board) Outcome {
	if Evaluate(b) != nil {
		return Won
	}
	if b.Full() {
		return Drawn
	}
	return InProgress
}
