package main

import (
	"context"
	"database/sql"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tobz1000/mines/internal/client"
	"github.com/tobz1000/mines/internal/config"
	"github.com/tobz1000/mines/internal/mines"
	"github.com/tobz1000/mines/internal/player"
	"github.com/tobz1000/mines/internal/sandbox"
	"github.com/tobz1000/mines/internal/store"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func openResults(ctx context.Context, path string) (*store.Store[player.Result], func(), error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, err
	}
	results, err := store.New[player.Result](ctx, db, "results")
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return results, func() { db.Close() }, nil
}

func main() {
	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
		sandbox.Log.SetLevel(logrus.WarnLevel)
	}
	mines.Log = logger
	player.Log = logger

	cfg, err := config.NewSolver()
	if err != nil {
		logger.Error("failed to read config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var srv player.Server
	if cfg.Local {
		srv = sandbox.NewService(sandbox.NewMemoryStore(), createRand())
		logger.Info("playing against in-process sandbox")
	} else {
		srv = client.New(cfg.ServerURL, cfg.ClientName)
		logger.Info("playing against server", slog.String("url", cfg.ServerURL))
	}

	var results *store.Store[player.Result]
	if cfg.ResultsDB != "" {
		var closeDB func()
		results, closeDB, err = openResults(ctx, cfg.ResultsDB)
		if err != nil {
			logger.Error("failed to open results db", slog.Any("error", err))
			os.Exit(1)
		}
		defer closeDB()
	}

	var (
		mu      sync.Mutex
		summary player.Summary
	)
	start := time.Now()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i := range cfg.Games {
		params := player.Params{
			Dims:      mines.Dims(cfg.Dims),
			Mines:     cfg.Mines,
			Autoclear: cfg.Autoclear,
			First:     mines.Coords(cfg.First),
		}
		if cfg.Seed != nil {
			// Consecutive seeds keep a batch reproducible.
			seed := *cfg.Seed + uint64(i)
			params.Seed = &seed
		}

		g.Go(func() error {
			res, err := player.Play(gCtx, srv, params)
			if err != nil {
				return err
			}

			mu.Lock()
			summary.Add(res)
			mu.Unlock()

			if results != nil {
				return results.Set(gCtx, res.GameID, *res)
			}
			return nil
		})
	}

	err = g.Wait()

	logger.Info(
		"summary",
		slog.Int("games", summary.Games),
		slog.Int("won", summary.Won),
		slog.Int("lost", summary.Lost),
		slog.Int("stalled", summary.Stalled),
		slog.Float64("winRate", summary.WinRate()),
		slog.Duration("elapsed", time.Since(start)),
	)

	if err != nil {
		logger.Error("solver stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
