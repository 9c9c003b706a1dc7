package main

import (
	"os"

	"github.com/alquds/archivesystem/internal/pkg/logger"
	"github.com/alquds/archivesystem/internal/server"
)

// @title ArchiveSystem API
// @version 1.0
// @description Document submission archive for Al-Quds University: a virtual file explorer over course folders, submissions, and uploaded files.

// @contact.name IT Department
// @contact.email it-support@alquds.edu

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT access token, prefixed with "Bearer "

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
