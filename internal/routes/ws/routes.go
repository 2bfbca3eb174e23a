package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/games"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/routes/api"
	"github.com/lk16/reversi/internal/ws"
)

func handleWs(c *websocket.Conn) {
	manager := c.Locals("manager").(*games.Manager) //nolint: errcheck
	gameID := c.Locals("game_id").(uuid.UUID)       //nolint: errcheck

	h := ws.NewHandler(c, manager, gameID)
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "game_id", gameID, "error", err)
	}
}

// requireUpgrade rejects plain HTTP requests before the game is looked up.
func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	app.Get("/ws/games/:id", middleware.AuthOrToken(cfg), api.GameID, requireUpgrade, websocket.New(handleWs))
}
