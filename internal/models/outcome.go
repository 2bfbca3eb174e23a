package models

import "github.com/lk16/reversi/internal/othello"

const Draw = "draw"

// GameOver reports whether neither player can move, which includes a full
// board and a board where one color has no discs left.
func GameOver(game *othello.Game) bool {
	if game.Count(othello.BLACK) == 0 || game.Count(othello.WHITE) == 0 {
		return true
	}
	return !game.HasLegalMovesFor(othello.BLACK) && !game.HasLegalMovesFor(othello.WHITE)
}

// Winner returns "black", "white" or Draw for a finished game and an empty
// string while the game is still going.
func Winner(game *othello.Game) string {
	if !GameOver(game) {
		return ""
	}

	black, white := game.Count(othello.BLACK), game.Count(othello.WHITE)
	switch {
	case black > white:
		return othello.BLACK.String()
	case white > black:
		return othello.WHITE.String()
	default:
		return Draw
	}
}
