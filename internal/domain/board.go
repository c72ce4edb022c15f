package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns the mark as shown on the board; Empty renders as "".
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Size is the number of cells on a board.
const Size = 9

// Board is a fixed 3x3 board stored row-major.
// It is a value type: copying a Board copies its cells.
type Board [Size]Cell

// With returns a copy of b with cell idx set to c. b itself is never modified.
func (b Board) With(idx int, c Cell) Board {
	b[idx] = c
	return b
}

// Full reports whether no cell is Empty.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// RowCol converts a cell index to 1-based row and column.
func RowCol(idx int) (row, col int) {
	return idx/3 + 1, idx%3 + 1
}

func validCell(idx int) bool { return idx >= 0 && idx < Size }
