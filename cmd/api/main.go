package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/bruce184/OCMS/internal/pkg/logger"
	"github.com/bruce184/OCMS/internal/server"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
}
