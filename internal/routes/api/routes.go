package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	apiGroup := app.Group("/api", middleware.AuthOrToken(cfg))

	apiGroup.Post("/games", CreateGame)

	gameGroup := apiGroup.Group("/games/:id", GameID)
	gameGroup.Get("/", GetGame)
	gameGroup.Get("/legal-moves", GetLegalMoves)
	gameGroup.Get("/history", GetHistory)
	gameGroup.Post("/moves", PlayMove)
	gameGroup.Post("/pass", Pass)
	gameGroup.Post("/undo", Undo)
}
