package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/games"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/services"
	"github.com/lk16/reversi/internal/storage"
)

const help = `commands:
  row,col or field (e.g. 2,3 or d3)  play a move
  pass                               pass when there are no legal moves
  undo                               take back the last move
  moves                              print the moves played so far
  quit                               stop playing`

func main() {
	rows := flag.Int("rows", config.DefaultBoardRows, "number of rows")
	cols := flag.Int("cols", config.DefaultBoardCols, "number of columns")
	dbDir := flag.String("db", "", "badger directory to save games in, games are not saved if empty")
	gameID := flag.String("game", "", "id of a saved game to resume, requires -db")
	flag.Parse()

	config.SetLogLevel()

	if err := run(*rows, *cols, *dbDir, *gameID); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(rows, cols int, dbDir, gameID string) error {
	if gameID != "" && dbDir == "" {
		return errors.New("-game requires -db")
	}

	var store games.Store = games.NewMemoryStore()

	if dbDir != "" {
		db, err := services.InitBadger(dbDir)
		if err != nil {
			return err
		}
		defer db.Close()

		store = storage.NewBadgerStore(db)
	}

	ctx := context.Background()
	manager := games.NewManager(store)

	var (
		state models.GameState
		err   error
	)

	if gameID != "" {
		var id uuid.UUID
		if id, err = uuid.Parse(gameID); err != nil {
			return fmt.Errorf("invalid game id: %w", err)
		}
		state, err = manager.State(ctx, id)
	} else {
		state, err = manager.Create(ctx, rows, cols)
	}

	if err != nil {
		return err
	}

	if dbDir != "" {
		fmt.Printf("game %s\n", state.ID)
	}
	fmt.Println(help)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		printState(state)

		if state.GameOver {
			printResult(state)
			return nil
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		next, err := handleCommand(ctx, manager, state.ID, line)

		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			fmt.Println(err)
		case next != nil:
			state = *next
		}
	}
}

var errQuit = errors.New("quit")

// handleCommand runs one command. It returns the new state for commands that
// change the game.
func handleCommand(ctx context.Context, manager *games.Manager, id uuid.UUID, line string) (*models.GameState, error) {
	var (
		state models.GameState
		err   error
	)

	switch strings.ToLower(line) {
	case "":
		return nil, nil
	case "quit", "exit":
		return nil, errQuit
	case "help":
		fmt.Println(help)
		return nil, nil
	case "moves":
		history, err := manager.History(ctx, id)
		if err != nil {
			return nil, err
		}
		moves := make([]othello.Move, len(history.Moves))
		for i, record := range history.Moves {
			moves[i] = record.Move()
		}
		fmt.Println(othello.FormatMoveList(moves))
		return nil, nil
	case "pass":
		state, err = manager.Pass(ctx, id)
	case "undo":
		state, err = manager.Undo(ctx, id)
	default:
		pos, parseErr := parseMove(line)
		if parseErr != nil {
			return nil, parseErr
		}
		state, err = manager.Move(ctx, id, pos.Row, pos.Col)
	}

	if err != nil {
		return nil, err
	}
	return &state, nil
}

func parseMove(s string) (othello.Pos, error) {
	if strings.Contains(s, ",") {
		return othello.ParsePos(s)
	}
	return othello.ParseField(s)
}

func printState(state models.GameState) {
	fmt.Println()
	for _, line := range state.Board {
		fmt.Println(line)
	}
	fmt.Printf("black %d, white %d\n", state.BlackCount, state.WhiteCount)

	if state.GameOver {
		return
	}

	if len(state.LegalMoves) == 0 {
		fmt.Printf("%s has no legal moves, pass or undo\n", state.CurrentPlayer)
		return
	}

	fields := make([]string, len(state.LegalMoves))
	for i, pos := range state.LegalMoves {
		fields[i] = pos.Field()
	}
	fmt.Printf("%s to move: %s\n", state.CurrentPlayer, strings.Join(fields, " "))
}

func printResult(state models.GameState) {
	if state.Winner == models.Draw {
		fmt.Println("game over: draw")
		return
	}
	fmt.Printf("game over: %s wins\n", state.Winner)
}
