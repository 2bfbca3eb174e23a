package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
)

func main() {
	config.SetLogLevel()

	// Setup app
	app, cfg, services := internal.SetupApp()

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		if err := app.Shutdown(); err != nil {
			slog.Error("Failed to shut down server", "error", err)
		}
	}()

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	err := app.Listen(address)

	if closeErr := services.Close(); closeErr != nil {
		slog.Error("Failed to close services", "error", closeErr)
	}

	if err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
