package othello

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDimensions = errors.New("invalid board dimensions")

// Board is a fixed grid of squares with precomputed neighbor links. It holds
// no game rules. Square colors may only change through setColor.
type Board struct {
	rows    int
	cols    int
	squares []Square
}

// NewBoard creates an empty board and links every square to its neighbors.
func NewBoard(rows, cols int) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	b := &Board{
		rows:    rows,
		cols:    cols,
		squares: make([]Square, rows*cols),
	}

	for row := range rows {
		for col := range cols {
			index := b.index(row, col)
			b.squares[index] = Square{
				index: index,
				pos:   Pos{Row: row, Col: col},
				color: EMPTY,
			}
		}
	}

	for i := range b.squares {
		square := &b.squares[i]
		for dRow := -1; dRow <= 1; dRow++ {
			for dCol := -1; dCol <= 1; dCol++ {
				if dRow == 0 && dCol == 0 {
					continue
				}

				neighbor, ok := b.SquareAt(square.pos.Row+dRow, square.pos.Col+dCol)
				if !ok {
					continue
				}

				square.addNeighbor(neighbor.index, neighbor.color)
			}
		}
	}

	return b, nil
}

// Rows returns the number of rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns.
func (b *Board) Cols() int {
	return b.cols
}

func (b *Board) index(row, col int) int {
	return row*b.cols + col
}

func (b *Board) contains(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// SquareAt returns the square at (row, col). The boolean is false when the
// position is off the board.
func (b *Board) SquareAt(row, col int) (*Square, bool) {
	if !b.contains(row, col) {
		return nil, false
	}
	return &b.squares[b.index(row, col)], true
}

// ColorAt returns the color at (row, col). The boolean is false when the
// position is off the board.
func (b *Board) ColorAt(row, col int) (Color, bool) {
	square, ok := b.SquareAt(row, col)
	if !ok {
		return EMPTY, false
	}
	return square.color, true
}

// NeighborInDirection returns the square one step from square in direction d.
func (b *Board) NeighborInDirection(square *Square, d Direction) (*Square, bool) {
	dRow, dCol := d.Offset()
	return b.SquareAt(square.pos.Row+dRow, square.pos.Col+dCol)
}

// DirectionBetween returns the direction from origin to target. It panics if
// the two squares are not adjacent.
func (b *Board) DirectionBetween(origin, target *Square) Direction {
	d, ok := directionFromOffset(target.pos.Row-origin.pos.Row, target.pos.Col-origin.pos.Col)
	if !ok {
		panic(fmt.Sprintf("%s and %s are not neighbors", origin, target))
	}
	return d
}

// Neighbors returns the neighbors of square in construction order.
func (b *Board) Neighbors(square *Square) []*Square {
	return b.resolve(square.neighbors)
}

// NeighborsWithColor returns the neighbors of square that currently have color c.
func (b *Board) NeighborsWithColor(square *Square, c Color) []*Square {
	return b.resolve(square.neighborsByColor[c])
}

func (b *Board) resolve(indexes []int) []*Square {
	squares := make([]*Square, len(indexes))
	for i, index := range indexes {
		squares[i] = &b.squares[index]
	}
	return squares
}

// setColor is the only place a square changes color. The neighbor-color
// index of every neighbor is updated before it returns.
func (b *Board) setColor(square *Square, c Color) {
	if square.color == c {
		return
	}
	square.color = c
	b.onColorChange(square)
}

// onColorChange moves square into the bucket matching its new color in the
// index of each of its neighbors.
func (b *Board) onColorChange(square *Square) {
	for _, n := range square.neighbors {
		b.squares[n].moveNeighbor(square.index, square.color)
	}
}

// String renders one line per row and one character per square.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.rows {
		for col := range b.cols {
			sb.WriteRune(b.squares[b.index(row, col)].color.Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Lines returns the rows of String without trailing newlines.
func (b *Board) Lines() []string {
	return strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
}
