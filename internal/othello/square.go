package othello

import (
	"fmt"
	"slices"
)

// Square is one cell of a Board. Neighbors are stored as slot indexes into the
// board's square slice; the board owns every square.
type Square struct {
	index int
	pos   Pos
	color Color

	// neighbors is fixed after construction, in construction order.
	neighbors []int

	// neighborsByColor partitions neighbors by their current color.
	neighborsByColor [colorCount][]int
}

// Pos returns the position of the square.
func (s *Square) Pos() Pos {
	return s.pos
}

// Row returns the row of the square.
func (s *Square) Row() int {
	return s.pos.Row
}

// Col returns the column of the square.
func (s *Square) Col() int {
	return s.pos.Col
}

// Color returns the current color of the square.
func (s *Square) Color() Color {
	return s.color
}

func (s *Square) String() string {
	return fmt.Sprintf("%s square at (%d,%d)", s.color, s.pos.Row, s.pos.Col)
}

// addNeighbor links the square at slot index n, which currently has color c.
func (s *Square) addNeighbor(n int, c Color) {
	if slices.Contains(s.neighbors, n) {
		panic(fmt.Sprintf("square %d is already a neighbor of %s", n, s))
	}
	s.neighbors = append(s.neighbors, n)
	s.neighborsByColor[c] = append(s.neighborsByColor[c], n)
}

// bucketOf returns the color bucket that currently holds neighbor n.
func (s *Square) bucketOf(n int) Color {
	if !slices.Contains(s.neighbors, n) {
		panic(fmt.Sprintf("square %d is not a neighbor of %s", n, s))
	}

	for c := range s.neighborsByColor {
		if slices.Contains(s.neighborsByColor[c], n) {
			return Color(c)
		}
	}

	panic(fmt.Sprintf("neighbor %d of %s is missing from every color bucket", n, s))
}

// moveNeighbor moves neighbor n into the bucket for color c.
func (s *Square) moveNeighbor(n int, c Color) {
	from := s.bucketOf(n)
	if from == c {
		return
	}

	bucket := s.neighborsByColor[from]
	i := slices.Index(bucket, n)
	s.neighborsByColor[from] = slices.Delete(bucket, i, i+1)
	s.neighborsByColor[c] = append(s.neighborsByColor[c], n)
}
