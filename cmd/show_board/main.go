package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
)

func main() {
	rows := flag.Int("rows", config.DefaultBoardRows, "number of rows")
	cols := flag.Int("cols", config.DefaultBoardCols, "number of columns")
	moveList := flag.String("moves", "", "moves to play from the start position, such as \"d3 c5 pass\"")
	flag.Parse()

	moves, err := othello.ParseMoveList(*moveList)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	game, err := othello.NewGame(*rows, *cols)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err = game.Replay(moves); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	game.Print()
	fmt.Printf("black %d, white %d, %s to move\n", game.Count(othello.BLACK), game.Count(othello.WHITE), game.Turn())
}
