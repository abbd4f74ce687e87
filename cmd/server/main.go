package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playtrade/exportquiz/internal/config"
	"github.com/playtrade/exportquiz/internal/database"
	"github.com/playtrade/exportquiz/internal/dataset"
	"github.com/playtrade/exportquiz/internal/game"
	"github.com/playtrade/exportquiz/internal/migrations"
	"github.com/playtrade/exportquiz/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Dataset source ---
	// SQLite datasets keep a live handle for health checks; CSV ones
	// are read once and closed.
	var db *sql.DB
	if filepath.Ext(cfg.DatasetPath) != ".csv" {
		db, err = database.Open(ctx, cfg.DatasetPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()

		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("connected to sqlite", "path", cfg.DatasetPath)
	}

	// --- Game core ---
	reg := game.NewRegistry()
	hub := server.NewHub(logger, reg)

	// --- HTTP server ---
	srv := server.New(cfg.HTTPAddr, logger, hub, reg, db, cfg.SPADir)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	// The server accepts connections while the dataset loads; until the
	// index is installed, room creation fails fast with DatasetNotReady.
	// A broken dataset is logged and the process stays up in that state
	// rather than crash-looping.
	g.Go(func() error {
		idx, err := loadDataset(gctx, cfg.DatasetPath, db)
		if err != nil {
			logger.Error("dataset load failed, rooms stay unavailable", "path", cfg.DatasetPath, "error", err)
			return nil
		}
		reg.SetIndex(idx)
		logger.Info("dataset ready",
			"records", idx.Len(),
			"products", len(idx.Products()),
			"years", len(idx.Years()),
		)
		return nil
	})

	g.Go(func() error {
		logger.Info("starting hub")
		return hub.Run(gctx)
	})

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func loadDataset(ctx context.Context, path string, db *sql.DB) (*dataset.Index, error) {
	if db != nil {
		return dataset.LoadDB(ctx, db)
	}
	return dataset.LoadCSV(path)
}
