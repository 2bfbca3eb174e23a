package othello

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	ErrIllegalMove    = errors.New("illegal move")
	ErrPassNotAllowed = errors.New("pass is only allowed without legal moves")
	ErrNothingToUndo  = errors.New("nothing to undo")
)

// IllegalMoveError describes a rejected ApplyMove call.
type IllegalMoveError struct {
	Player Color
	Pos    Pos
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move for %s at (%d,%d)", e.Player, e.Pos.Row, e.Pos.Col)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

// Move is one entry of the game history.
type Move struct {
	Player Color `json:"player"`
	Pos    Pos   `json:"pos"`
	Pass   bool  `json:"pass"`

	// Flipped lists the squares that changed from the opponent to Player.
	Flipped []Pos `json:"flipped,omitempty"`
}

// Game holds the rules state of an Othello game. It is not safe for
// concurrent use.
type Game struct {
	board *Board
	turn  Color

	// occupied holds the slot indexes of the squares of each color.
	occupied [colorCount]map[int]struct{}

	history []Move
}

// newGameEmpty creates a game on an empty board with BLACK to move.
func newGameEmpty(rows, cols int) (*Game, error) {
	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}

	g := &Game{
		board: board,
		turn:  BLACK,
	}
	g.occupied[BLACK] = make(map[int]struct{})
	g.occupied[WHITE] = make(map[int]struct{})

	return g, nil
}

// NewGame creates a game with the standard four center discs and BLACK to move.
func NewGame(rows, cols int) (*Game, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: %dx%d is too small for the start position", ErrInvalidDimensions, rows, cols)
	}

	g, err := newGameEmpty(rows, cols)
	if err != nil {
		return nil, err
	}

	r0, c0 := rows/2-1, cols/2-1
	g.place(r0, c0, WHITE)
	g.place(r0+1, c0+1, WHITE)
	g.place(r0, c0+1, BLACK)
	g.place(r0+1, c0, BLACK)

	return g, nil
}

// NewGameMust is like NewGame but panics on invalid dimensions.
func NewGameMust(rows, cols int) *Game {
	g, err := NewGame(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}

// ParseGame builds a position from text rows using '.', 'B' and 'W'.
// All rows must have the same length.
func ParseGame(rows []string, turn Color) (*Game, error) {
	if turn != BLACK && turn != WHITE {
		return nil, fmt.Errorf("invalid turn: %s", turn)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}

	cols := len([]rune(rows[0]))
	g, err := newGameEmpty(len(rows), cols)
	if err != nil {
		return nil, err
	}

	for row, line := range rows {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidDimensions, row, len(runes), cols)
		}

		for col, r := range runes {
			c, ok := colorFromRune(r)
			if !ok {
				return nil, fmt.Errorf("invalid square %q at (%d,%d)", r, row, col)
			}
			if c != EMPTY {
				g.place(row, col, c)
			}
		}
	}

	g.turn = turn
	return g, nil
}

// place puts a disc on an empty square without any rule checks.
func (g *Game) place(row, col int, c Color) {
	square, ok := g.board.SquareAt(row, col)
	if !ok {
		panic(fmt.Sprintf("cannot place outside the board at (%d,%d)", row, col))
	}
	g.recolor(square, c)
}

// recolor changes the color of square and keeps both the board index and the
// occupied sets in sync.
func (g *Game) recolor(square *Square, c Color) {
	if old := square.color; old != EMPTY {
		delete(g.occupied[old], square.index)
	}

	g.board.setColor(square, c)

	if c != EMPTY {
		g.occupied[c][square.index] = struct{}{}
	}
}

// Board returns the board. Callers must not hold on to it across moves if
// they need a stable view.
func (g *Game) Board() *Board {
	return g.board
}

// Turn returns the player to move.
func (g *Game) Turn() Color {
	return g.turn
}

// Count returns the number of discs of color c.
func (g *Game) Count(c Color) int {
	if c == EMPTY {
		return g.board.rows*g.board.cols - len(g.occupied[BLACK]) - len(g.occupied[WHITE])
	}
	return len(g.occupied[c])
}

// Occupied returns the positions holding color c, sorted row-major.
func (g *Game) Occupied(c Color) []Pos {
	if c == EMPTY {
		panic("EMPTY squares are not tracked")
	}
	return g.positions(slices.Collect(maps.Keys(g.occupied[c])))
}

// History returns a copy of the moves played so far.
func (g *Game) History() []Move {
	history := make([]Move, len(g.history))
	for i, move := range g.history {
		move.Flipped = slices.Clone(move.Flipped)
		history[i] = move
	}
	return history
}

// LastMove returns the most recent move or pass.
func (g *Game) LastMove() (Move, bool) {
	if len(g.history) == 0 {
		return Move{}, false
	}
	move := g.history[len(g.history)-1]
	move.Flipped = slices.Clone(move.Flipped)
	return move, true
}

// MoveCount returns the number of moves and passes played.
func (g *Game) MoveCount() int {
	return len(g.history)
}

func (g *Game) positions(indexes []int) []Pos {
	positions := make([]Pos, len(indexes))
	for i, index := range indexes {
		positions[i] = g.board.squares[index].pos
	}
	slices.SortFunc(positions, comparePos)
	return positions
}

// LegalMoves returns every square where the player to move can play, sorted
// row-major.
func (g *Game) LegalMoves() []Pos {
	return g.LegalMovesFor(g.turn)
}

// LegalMovesFor returns the squares where player could play if it were
// their turn.
func (g *Game) LegalMovesFor(player Color) []Pos {
	target := player.Opponent()

	// Only empty squares next to an opponent disc can be legal.
	candidates := make(map[int]struct{})
	for index := range g.occupied[target] {
		for _, n := range g.board.squares[index].neighborsByColor[EMPTY] {
			candidates[n] = struct{}{}
		}
	}

	moves := make([]int, 0, len(candidates))
	for index := range candidates {
		if g.isValidMove(&g.board.squares[index], target) {
			moves = append(moves, index)
		}
	}

	return g.positions(moves)
}

// HasLegalMoves reports whether the player to move has any legal move.
func (g *Game) HasLegalMoves() bool {
	return g.HasLegalMovesFor(g.turn)
}

// HasLegalMovesFor reports whether player has any legal move in the current
// position, regardless of whose turn it is.
func (g *Game) HasLegalMovesFor(player Color) bool {
	return len(g.LegalMovesFor(player)) > 0
}

// IsLegalMove reports whether the player to move can play at (row, col).
func (g *Game) IsLegalMove(row, col int) bool {
	square, ok := g.board.SquareAt(row, col)
	if !ok || square.color != EMPTY {
		return false
	}
	return g.isValidMove(square, g.turn.Opponent())
}

// isValidMove checks whether placing on square flanks at least one line of
// target discs.
func (g *Game) isValidMove(square *Square, target Color) bool {
	for _, n := range square.neighborsByColor[target] {
		neighbor := &g.board.squares[n]
		direction := g.board.DirectionBetween(square, neighbor)
		if g.canFlankInDirection(neighbor, direction, target) {
			return true
		}
	}
	return false
}

// canFlankInDirection walks from start in direction d over target discs and
// reports whether the run ends on a disc of the other player.
func (g *Game) canFlankInDirection(start *Square, d Direction, target Color) bool {
	current := start
	for {
		next, ok := g.board.NeighborInDirection(current, d)
		if !ok || next.color == EMPTY {
			return false
		}
		if next.color != target {
			return true
		}
		current = next
	}
}

// ApplyMove places a disc for the player to move, flips every flanked line
// and passes the turn. The state is unchanged when the move is illegal.
func (g *Game) ApplyMove(row, col int) error {
	player := g.turn
	target := player.Opponent()

	square, ok := g.board.SquareAt(row, col)
	if !ok || square.color != EMPTY || !g.isValidMove(square, target) {
		return &IllegalMoveError{Player: player, Pos: Pos{Row: row, Col: col}}
	}

	g.recolor(square, player)

	var flipped []Pos
	for _, n := range square.neighbors {
		neighbor := &g.board.squares[n]
		if neighbor.color != target {
			continue
		}

		direction := g.board.DirectionBetween(square, neighbor)
		if g.canFlankInDirection(neighbor, direction, target) {
			flipped = g.flipPieces(square, direction, target, flipped)
		}
	}

	g.history = append(g.history, Move{
		Player:  player,
		Pos:     square.pos,
		Flipped: flipped,
	})
	g.turn = target

	return nil
}

// flipPieces recolors target discs starting next to start in direction d
// until a disc of another color is reached.
func (g *Game) flipPieces(start *Square, d Direction, target Color, flipped []Pos) []Pos {
	current := start
	for {
		next, ok := g.board.NeighborInDirection(current, d)
		if !ok || next.color != target {
			return flipped
		}
		g.recolor(next, g.turn)
		flipped = append(flipped, next.pos)
		current = next
	}
}

// Pass gives the turn to the opponent. It is only allowed when the player to
// move has no legal moves.
func (g *Game) Pass() error {
	if g.HasLegalMoves() {
		return ErrPassNotAllowed
	}

	g.history = append(g.history, Move{Player: g.turn, Pass: true})
	g.turn = g.turn.Opponent()
	return nil
}

// Undo reverts the last move or pass.
func (g *Game) Undo() error {
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	if !last.Pass {
		opponent := last.Player.Opponent()
		for _, pos := range last.Flipped {
			g.place(pos.Row, pos.Col, opponent)
		}
		g.place(last.Pos.Row, last.Pos.Col, EMPTY)
	}

	g.turn = last.Player
	return nil
}

// Replay plays moves in order, stopping at the first one that fails. Only
// Pos and Pass of each move are used.
func (g *Game) Replay(moves []Move) error {
	for i, move := range moves {
		var err error
		if move.Pass {
			err = g.Pass()
		} else {
			err = g.ApplyMove(move.Pos.Row, move.Pos.Col)
		}

		if err != nil {
			return fmt.Errorf("failed to replay move %d: %w", i, err)
		}
	}
	return nil
}
