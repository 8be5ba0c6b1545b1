package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"

	"github.com/tobz1000/mines/internal/app"
	"github.com/tobz1000/mines/internal/config"
	"github.com/tobz1000/mines/internal/sandbox"
)

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
		sandbox.Log.SetLevel(logrus.DebugLevel)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
		sandbox.Log.SetFormatter(&logrus.JSONFormatter{})
	}

	cfg, err := config.NewSandbox()
	if err != nil {
		logger.Error("failed to read config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	a := app.New(logger, cfg)

	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}
