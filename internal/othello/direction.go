package othello

// Direction is one of the eight compass directions.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest

	directionCount = 8
)

// offset is a (row, col) step.
type offset struct {
	row int
	col int
}

// directionOffsets maps each direction to its step. North increases the row
// index and South decreases it, so North points down on a printed board.
var directionOffsets = [directionCount]offset{
	North:     {row: 1, col: 0},
	South:     {row: -1, col: 0},
	East:      {row: 0, col: 1},
	West:      {row: 0, col: -1},
	NorthEast: {row: 1, col: 1},
	NorthWest: {row: 1, col: -1},
	SouthEast: {row: -1, col: 1},
	SouthWest: {row: -1, col: -1},
}

var directionNames = [directionCount]string{
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	NorthEast: "north_east",
	NorthWest: "north_west",
	SouthEast: "south_east",
	SouthWest: "south_west",
}

// Directions lists all directions in table order.
func Directions() []Direction {
	return []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
}

// Offset returns the row and column step of the direction.
func (d Direction) Offset() (int, int) {
	o := directionOffsets[d]
	return o.row, o.col
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	o := directionOffsets[d]
	found, ok := directionFromOffset(-o.row, -o.col)
	if !ok {
		panic("direction table is not symmetric")
	}
	return found
}

func (d Direction) String() string {
	if d < 0 || d >= directionCount {
		return "unknown"
	}
	return directionNames[d]
}

// directionFromOffset finds the direction with the given unit step.
func directionFromOffset(dRow, dCol int) (Direction, bool) {
	for d, o := range directionOffsets {
		if o.row == dRow && o.col == dCol {
			return Direction(d), true
		}
	}
	return 0, false
}
