package othello

// Color is the content of a square, or the side to move.
type Color int

const (
	EMPTY Color = iota
	BLACK
	WHITE

	colorCount = 3
)

// Opponent returns the other player. It panics on EMPTY.
func (c Color) Opponent() Color {
	switch c {
	case BLACK:
		return WHITE
	case WHITE:
		return BLACK
	default:
		panic("EMPTY has no opponent")
	}
}

// String returns the lowercase color name.
func (c Color) String() string {
	switch c {
	case BLACK:
		return "black"
	case WHITE:
		return "white"
	case EMPTY:
		return "empty"
	default:
		return "unknown"
	}
}

// Rune returns the single character used in text boards.
func (c Color) Rune() rune {
	switch c {
	case BLACK:
		return 'B'
	case WHITE:
		return 'W'
	default:
		return '.'
	}
}

func colorFromRune(r rune) (Color, bool) {
	switch r {
	case 'B', 'b':
		return BLACK, true
	case 'W', 'w':
		return WHITE, true
	case '.', '-':
		return EMPTY, true
	default:
		return EMPTY, false
	}
}
