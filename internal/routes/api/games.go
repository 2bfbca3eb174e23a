package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/games"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
)

// GameID parses the game id route parameter and stores it as "game_id".
func GameID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game id",
		})
	}

	c.Locals("game_id", id)
	return c.Next()
}

func gameID(c *fiber.Ctx) uuid.UUID {
	return c.Locals("game_id").(uuid.UUID) //nolint: errcheck
}

func manager(c *fiber.Ctx) *games.Manager {
	return c.Locals("manager").(*games.Manager) //nolint: errcheck
}

// ErrorStatus maps an error from the game manager to an HTTP status code.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, games.ErrCorruptGame):
		return fiber.StatusInternalServerError
	case errors.Is(err, models.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, games.ErrGameOver),
		errors.Is(err, othello.ErrIllegalMove),
		errors.Is(err, othello.ErrPassNotAllowed),
		errors.Is(err, othello.ErrNothingToUndo),
		errors.Is(err, othello.ErrInvalidDimensions):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(ErrorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// CreateGame starts a new game.
func CreateGame(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	var req models.NewGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	if err := req.Validate(cfg.BoardRows, cfg.BoardCols); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	state, err := manager(c).Create(c.Context(), req.Rows, req.Cols)
	if err != nil {
		return sendError(c, err)
	}

	c.Locals("game_id", state.ID)
	return c.Status(fiber.StatusCreated).JSON(state)
}

// GetGame returns the state of a game.
func GetGame(c *fiber.Ctx) error {
	state, err := manager(c).State(c.Context(), gameID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(state)
}

// GetLegalMoves returns the legal moves of the player to move.
func GetLegalMoves(c *fiber.Ctx) error {
	moves, err := manager(c).LegalMoves(c.Context(), gameID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(moves)
}

// GetHistory returns the move log of a game.
func GetHistory(c *fiber.Ctx) error {
	history, err := manager(c).History(c.Context(), gameID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

// PlayMove plays a move for the player to move.
func PlayMove(c *fiber.Ctx) error {
	var req models.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	state, err := manager(c).Move(c.Context(), gameID(c), *req.Row, *req.Col)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(state)
}

// Pass passes for the player to move.
func Pass(c *fiber.Ctx) error {
	state, err := manager(c).Pass(c.Context(), gameID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(state)
}

// Undo takes back the last move or pass.
func Undo(c *fiber.Ctx) error {
	state, err := manager(c).Undo(c.Context(), gameID(c))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(state)
}
