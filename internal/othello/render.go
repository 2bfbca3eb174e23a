package othello

import (
	"fmt"
	"strings"
)

// String returns the text board followed by the player to move.
func (g *Game) String() string {
	return g.board.String() + g.turn.String() + " to move\n"
}

// ASCIIArtLines returns a framed drawing of the board. Legal moves for the
// player to move are marked with a dot.
func (g *Game) ASCIIArtLines() []string {
	legal := make(map[Pos]bool)
	for _, pos := range g.LegalMoves() {
		legal[pos] = true
	}

	rows, cols := g.board.rows, g.board.cols
	rowLabelWidth := len(fmt.Sprint(rows))
	padding := strings.Repeat(" ", rowLabelWidth-1)

	var header strings.Builder
	header.WriteString(padding + "+-")
	for col := range cols {
		header.WriteString(columnLabel(col) + "-")
	}
	header.WriteString("+")

	lines := make([]string, rows+2)
	lines[0] = header.String()

	for row := range rows {
		var line strings.Builder
		fmt.Fprintf(&line, "%*d ", rowLabelWidth, row+1)

		for col := range cols {
			square := &g.board.squares[g.board.index(row, col)]

			switch {
			case square.color == WHITE:
				line.WriteString("○ ")
			case square.color == BLACK:
				line.WriteString("● ")
			case legal[square.pos]:
				line.WriteString("· ")
			default:
				line.WriteString("  ")
			}
		}

		lines[row+1] = line.String() + "|"
	}

	lines[rows+1] = padding + "+" + strings.Repeat("-", 2*cols+1) + "+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (g *Game) Print() {
	for _, line := range g.ASCIIArtLines() {
		fmt.Println(line)
	}
}

func columnLabel(col int) string {
	if col < 26 {
		return string(rune('a' + col))
	}
	return "?"
}
