package main

import (
	"os"
	"path/filepath"

	"github.com/yigit/checkmygrade/internal/config"
	"github.com/yigit/checkmygrade/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/checkmygrade/internal/server"
)

// @title CheckMyGrade API
// @version 1.0
// @description Student, course and professor records with per-course grade statistics

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))

	srv, err := server.NewServer(configPath)
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
