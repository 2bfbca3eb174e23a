package othello

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNewGameStart(t *testing.T) {
	g := NewGameMust(8, 8)

	require.Equal(t, BLACK, g.Turn())

	for row := range 8 {
		for col := range 8 {
			color, ok := g.Board().ColorAt(row, col)
			require.True(t, ok)

			switch (Pos{Row: row, Col: col}) {
			case Pos{Row: 3, Col: 3}, Pos{Row: 4, Col: 4}:
				require.Equal(t, WHITE, color)
			case Pos{Row: 3, Col: 4}, Pos{Row: 4, Col: 3}:
				require.Equal(t, BLACK, color)
			default:
				require.Equal(t, EMPTY, color, "square (%d,%d)", row, col)
			}
		}
	}

	require.Equal(t, 2, g.Count(BLACK))
	require.Equal(t, 2, g.Count(WHITE))
	require.Equal(t, 60, g.Count(EMPTY))
	requireGameConsistent(t, g)
}

func TestNewGameInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{1, 8}, {8, 1}, {0, 0}} {
		_, err := NewGame(dims[0], dims[1])
		require.ErrorIs(t, err, ErrInvalidDimensions)
	}

	require.Panics(t, func() { NewGameMust(1, 1) })
}

func TestNewGameNonStandardSize(t *testing.T) {
	g := NewGameMust(6, 10)

	require.Equal(t, []string{
		"..........",
		"..........",
		"....WB....",
		"....BW....",
		"..........",
		"..........",
	}, g.Board().Lines())

	requireGameConsistent(t, g)
	requireLegalMovesMatchBruteForce(t, g)
}

func TestLegalMovesStart(t *testing.T) {
	g := NewGameMust(8, 8)

	want := []Pos{{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4}}
	if diff := cmp.Diff(want, g.LegalMoves()); diff != "" {
		t.Errorf("legal moves mismatch (-want +got):\n%s", diff)
	}

	for _, pos := range want {
		require.True(t, g.IsLegalMove(pos.Row, pos.Col))
	}
	require.False(t, g.IsLegalMove(0, 0))
	require.False(t, g.IsLegalMove(3, 3))
	require.False(t, g.IsLegalMove(-1, 3))
}

func TestLegalMovesIdempotent(t *testing.T) {
	g := NewGameMust(8, 8)
	require.NoError(t, g.ApplyMove(2, 3))

	first := g.LegalMoves()
	second := g.LegalMoves()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("legal moves changed between calls (-first +second):\n%s", diff)
	}
}

func TestApplyMoveFlipsSingleDisc(t *testing.T) {
	g := NewGameMust(8, 8)

	require.NoError(t, g.ApplyMove(2, 3))

	color, _ := g.Board().ColorAt(2, 3)
	require.Equal(t, BLACK, color)
	color, _ = g.Board().ColorAt(3, 3)
	require.Equal(t, BLACK, color)
	color, _ = g.Board().ColorAt(4, 4)
	require.Equal(t, WHITE, color)

	require.Equal(t, WHITE, g.Turn())
	require.Equal(t, 4, g.Count(BLACK))
	require.Equal(t, 1, g.Count(WHITE))

	history := g.History()
	require.Len(t, history, 1)
	require.Equal(t, Move{Player: BLACK, Pos: Pos{Row: 2, Col: 3}, Flipped: []Pos{{Row: 3, Col: 3}}}, history[0])

	want := []Pos{{Row: 2, Col: 2}, {Row: 2, Col: 4}, {Row: 4, Col: 2}}
	if diff := cmp.Diff(want, g.LegalMoves()); diff != "" {
		t.Errorf("white legal moves mismatch (-want +got):\n%s", diff)
	}

	requireGameConsistent(t, g)
}

func TestApplyMoveFlipsAllDirections(t *testing.T) {
	g, err := ParseGame([]string{
		"B.B.B",
		".WWW.",
		"BW.WB",
		".WWW.",
		"B.B.B",
	}, BLACK)
	require.NoError(t, err)

	require.NoError(t, g.ApplyMove(2, 2))

	require.Equal(t, []string{
		"B.B.B",
		".BBB.",
		"BBBBB",
		".BBB.",
		"B.B.B",
	}, g.Board().Lines())

	require.Equal(t, 0, g.Count(WHITE))
	require.Equal(t, 17, g.Count(BLACK))
	require.Len(t, g.History()[0].Flipped, 8)
	requireGameConsistent(t, g)
}

func TestApplyMoveFlipsLongRunAndStopsAtAnchor(t *testing.T) {
	g, err := ParseGame([]string{
		".WWWWBW",
	}, BLACK)
	require.NoError(t, err)

	require.NoError(t, g.ApplyMove(0, 0))

	require.Equal(t, []string{"BBBBBBW"}, g.Board().Lines())
	requireGameConsistent(t, g)
}

func TestApplyMoveDoesNotFlipUnanchoredLines(t *testing.T) {
	g, err := ParseGame([]string{
		"....",
		".WB.",
		".W..",
		"....",
	}, BLACK)
	require.NoError(t, err)

	// The run through (1,1) ends on (1,2); the diagonal through (2,1) runs into an empty square.
	require.NoError(t, g.ApplyMove(1, 0))

	require.Equal(t, []string{
		"....",
		"BBB.",
		".W..",
		"....",
	}, g.Board().Lines())
	requireGameConsistent(t, g)
}

func TestApplyMoveIllegal(t *testing.T) {
	tests := []struct {
		name string
		pos  Pos
	}{
		{name: "not flanking", pos: Pos{Row: 0, Col: 0}},
		{name: "adjacent without anchor", pos: Pos{Row: 2, Col: 2}},
		{name: "occupied", pos: Pos{Row: 3, Col: 3}},
		{name: "off board", pos: Pos{Row: 8, Col: 0}},
		{name: "negative", pos: Pos{Row: -1, Col: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGameMust(8, 8)
			before := g.String()

			err := g.ApplyMove(tt.pos.Row, tt.pos.Col)
			require.ErrorIs(t, err, ErrIllegalMove)

			var illegal *IllegalMoveError
			require.True(t, errors.As(err, &illegal))
			require.Equal(t, BLACK, illegal.Player)
			require.Equal(t, tt.pos, illegal.Pos)

			require.Equal(t, before, g.String())
			require.Equal(t, BLACK, g.Turn())
			require.Empty(t, g.History())
			requireGameConsistent(t, g)
		})
	}
}

func TestLegalMovesFor(t *testing.T) {
	g := NewGameMust(8, 8)

	require.Equal(t, g.LegalMoves(), g.LegalMovesFor(BLACK))
	require.Equal(t, []Pos{{Row: 2, Col: 4}, {Row: 3, Col: 5}, {Row: 4, Col: 2}, {Row: 5, Col: 3}}, g.LegalMovesFor(WHITE))
	require.True(t, g.HasLegalMovesFor(WHITE))
	require.Equal(t, BLACK, g.Turn())

	g, err := ParseGame([]string{"W...", "....", "....", "...."}, BLACK)
	require.NoError(t, err)
	require.False(t, g.HasLegalMovesFor(BLACK))
	require.False(t, g.HasLegalMovesFor(WHITE))
}

func TestLegalMovesEmpty(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		turn Color
	}{
		{
			name: "no anchor for black",
			rows: []string{"W...", "....", "....", "...."},
			turn: BLACK,
		},
		{
			name: "full board",
			rows: []string{"BW", "WB"},
			turn: WHITE,
		},
		{
			name: "opponent has no discs",
			rows: []string{"BBB", "B.B", "BBB"},
			turn: BLACK,
		},
		{
			name: "blockaded",
			rows: []string{
				"WWWW",
				"WBBW",
				"WBBW",
				"WWWW",
			},
			turn: BLACK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseGame(tt.rows, tt.turn)
			require.NoError(t, err)

			moves := g.LegalMoves()
			require.NotNil(t, moves)
			require.Empty(t, moves)
			require.False(t, g.HasLegalMoves())
		})
	}
}

func TestPass(t *testing.T) {
	g := NewGameMust(8, 8)
	require.ErrorIs(t, g.Pass(), ErrPassNotAllowed)
	require.Equal(t, BLACK, g.Turn())

	g, err := ParseGame([]string{
		"W...",
		"....",
		"....",
		"...B",
	}, BLACK)
	require.NoError(t, err)

	require.NoError(t, g.Pass())
	require.Equal(t, WHITE, g.Turn())
	require.Equal(t, []Move{{Player: BLACK, Pass: true}}, g.History())
}

func TestUndo(t *testing.T) {
	g := NewGameMust(8, 8)
	require.ErrorIs(t, g.Undo(), ErrNothingToUndo)

	start := g.String()
	require.NoError(t, g.ApplyMove(2, 3))
	afterFirst := g.String()
	require.NoError(t, g.ApplyMove(2, 2))

	require.NoError(t, g.Undo())
	require.Equal(t, afterFirst, g.String())
	require.Equal(t, WHITE, g.Turn())
	requireGameConsistent(t, g)

	require.NoError(t, g.Undo())
	require.Equal(t, start, g.String())
	require.Equal(t, BLACK, g.Turn())
	require.Empty(t, g.History())
	requireGameConsistent(t, g)
}

func TestUndoPass(t *testing.T) {
	g, err := ParseGame([]string{"W.", ".."}, BLACK)
	require.NoError(t, err)

	require.NoError(t, g.Pass())
	require.NoError(t, g.Undo())

	require.Equal(t, BLACK, g.Turn())
	require.Equal(t, []string{"W.", ".."}, g.Board().Lines())
}

func TestParseGameErrors(t *testing.T) {
	_, err := ParseGame(nil, BLACK)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = ParseGame([]string{"...", ".."}, BLACK)
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = ParseGame([]string{"..x"}, BLACK)
	require.Error(t, err)

	_, err = ParseGame([]string{"..."}, EMPTY)
	require.Error(t, err)
}

func TestRandomGamesKeepInvariants(t *testing.T) {
	for seed := range int64(20) {
		rng := rand.New(rand.NewSource(seed))
		g := NewGameMust(8, 8)

		for {
			requireGameConsistent(t, g)
			requireLegalMovesMatchBruteForce(t, g)

			moves := g.LegalMoves()
			if len(moves) == 0 {
				require.NoError(t, g.Pass())
				if !g.HasLegalMoves() {
					break
				}
				continue
			}

			move := moves[rng.Intn(len(moves))]
			require.NoError(t, g.ApplyMove(move.Row, move.Col))
		}

		replayed := NewGameMust(8, 8)
		require.NoError(t, replayed.Replay(g.History()))
		require.Equal(t, g.String(), replayed.String(), "seed %d", seed)
		requireGameConsistent(t, replayed)

		final := g.String()
		moveCount := len(g.History())
		for range moveCount {
			require.NoError(t, g.Undo())
		}
		require.Equal(t, NewGameMust(8, 8).String(), g.String(), "seed %d, final position:\n%s", seed, final)
		requireGameConsistent(t, g)
	}
}

func TestReplayStopsAtIllegalMove(t *testing.T) {
	g := NewGameMust(8, 8)

	err := g.Replay([]Move{
		{Pos: Pos{Row: 2, Col: 3}},
		{Pos: Pos{Row: 0, Col: 0}},
	})
	require.ErrorIs(t, err, ErrIllegalMove)
	require.Len(t, g.History(), 1)
}

func TestHistoryIsCopy(t *testing.T) {
	g := NewGameMust(8, 8)
	require.NoError(t, g.ApplyMove(2, 3))

	history := g.History()
	history[0].Flipped[0] = Pos{Row: 7, Col: 7}

	require.Equal(t, Pos{Row: 3, Col: 3}, g.History()[0].Flipped[0])
}

// requireGameConsistent checks the neighbor-color index and that the occupied
// sets hold exactly the non-empty squares of matching color.
func requireGameConsistent(t *testing.T, g *Game) {
	t.Helper()

	requireBoardIndexConsistent(t, g.board)

	for i := range g.board.squares {
		square := &g.board.squares[i]
		_, inBlack := g.occupied[BLACK][i]
		_, inWhite := g.occupied[WHITE][i]

		require.Equal(t, square.color == BLACK, inBlack, "%s vs black occupied set", square)
		require.Equal(t, square.color == WHITE, inWhite, "%s vs white occupied set", square)
	}
}

// requireLegalMovesMatchBruteForce compares LegalMoves with a full-board scan.
func requireLegalMovesMatchBruteForce(t *testing.T, g *Game) {
	t.Helper()

	player := g.Turn()
	target := player.Opponent()

	want := []Pos{}
	for row := range g.board.Rows() {
		for col := range g.board.Cols() {
			if c, _ := g.board.ColorAt(row, col); c != EMPTY {
				continue
			}

			for _, d := range Directions() {
				dRow, dCol := d.Offset()
				r, c := row+dRow, col+dCol
				run := 0
				for {
					color, ok := g.board.ColorAt(r, c)
					if !ok || color != target {
						if ok && color == player && run > 0 {
							want = append(want, Pos{Row: row, Col: col})
						}
						break
					}
					run++
					r, c = r+dRow, c+dCol
				}

				if len(want) > 0 && want[len(want)-1] == (Pos{Row: row, Col: col}) {
					break
				}
			}
		}
	}

	if diff := cmp.Diff(want, g.LegalMoves()); diff != "" {
		t.Fatalf("legal moves differ from full scan (-want +got):\n%s\n%s", diff, g)
	}
}
