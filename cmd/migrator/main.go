package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/tobz1000/mines/internal/config"
	"github.com/tobz1000/mines/internal/database"
	"github.com/tobz1000/mines/internal/repository"
)

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	url, err := config.DbURL()
	if err != nil {
		logger.Error("failed to read db config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := database.Migrate(url, repository.Migrations); err != nil {
		logger.Error("failed to migrate", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("migration successful")
}
