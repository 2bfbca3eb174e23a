package othello

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPosition = errors.New("invalid position")

// Pos is a 0-based (row, col) coordinate.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String returns the "row,col" form accepted by ParsePos.
func (p Pos) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Field returns the notation used in game records, such as "d3".
// Only boards up to 26 columns have a field name for every square.
func (p Pos) Field() string {
	if p.Col < 0 || p.Col >= 26 || p.Row < 0 {
		return p.String()
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, p.Row+1)
}

// ParsePos parses "row,col". Whitespace around either number is ignored.
func ParsePos(s string) (Pos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Pos{}, fmt.Errorf("%w: expected \"row,col\", got %q", ErrInvalidPosition, s)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Pos{}, fmt.Errorf("%w: invalid row: %w", ErrInvalidPosition, err)
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Pos{}, fmt.Errorf("%w: invalid col: %w", ErrInvalidPosition, err)
	}

	return Pos{Row: row, Col: col}, nil
}

// ParseField parses field notation like "d3" or "D3".
func ParseField(field string) (Pos, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if len(field) < 2 {
		return Pos{}, fmt.Errorf("%w: field too short: %q", ErrInvalidPosition, field)
	}

	if field[0] < 'a' || field[0] > 'z' {
		return Pos{}, fmt.Errorf("%w: invalid column in field %q", ErrInvalidPosition, field)
	}

	row, err := strconv.Atoi(field[1:])
	if err != nil || row < 1 {
		return Pos{}, fmt.Errorf("%w: invalid row in field %q", ErrInvalidPosition, field)
	}

	return Pos{Row: row - 1, Col: int(field[0] - 'a')}, nil
}

func comparePos(a, b Pos) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}
