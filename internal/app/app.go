// Package app runs the sandbox game server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tobz1000/mines/internal/config"
	"github.com/tobz1000/mines/internal/database"
	"github.com/tobz1000/mines/internal/repository"
	"github.com/tobz1000/mines/internal/sandbox"
)

type App struct {
	logger *slog.Logger
	cfg    *config.Sandbox
	db     *pgxpool.Pool
	ws     *config.WebSocket
}

func New(logger *slog.Logger, cfg *config.Sandbox) *App {
	app := &App{
		logger: logger,
		cfg:    cfg,
		ws:     config.NewWebSocket(),
	}

	return app
}

func (a *App) store(ctx context.Context) (sandbox.Store, error) {
	if !a.cfg.Persist {
		a.logger.Info("keeping games in memory")
		return sandbox.NewMemoryStore(), nil
	}

	db, err := database.ConnectAndMigrate(ctx, repository.Migrations)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	a.logger.Info("keeping games in postgres")
	return repository.New(db), nil
}

func (a *App) Start(ctx context.Context) error {
	store, err := a.store(ctx)
	if err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.routes(sandbox.NewService(store, createRand())),
	}

	errCh := make(chan error, 1)
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("unable to listen and serve: %w", err)
		}
		close(errCh)
	}()

	a.logger.Info(
		"server listening",
		slog.String("addr", a.cfg.Addr),
		slog.String("base path", a.cfg.BasePath),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
