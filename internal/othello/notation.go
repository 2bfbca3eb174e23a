package othello

import (
	"fmt"
	"strings"
)

const passField = "pass"

// ParseMoveList parses whitespace separated fields such as "d3 c5 pass f6"
// into moves that can be passed to Replay.
func ParseMoveList(s string) ([]Move, error) {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))

	for i, field := range fields {
		if strings.EqualFold(field, passField) {
			moves = append(moves, Move{Pass: true})
			continue
		}

		pos, err := ParseField(field)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		moves = append(moves, Move{Pos: pos})
	}

	return moves, nil
}

// FormatMoveList is the inverse of ParseMoveList.
func FormatMoveList(moves []Move) string {
	fields := make([]string, len(moves))
	for i, move := range moves {
		if move.Pass {
			fields[i] = passField
		} else {
			fields[i] = move.Pos.Field()
		}
	}
	return strings.Join(fields, " ")
}
