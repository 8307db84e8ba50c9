package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/autosales/internal/core/config"
	"github.com/aevon-lab/autosales/internal/dashboard"
	"github.com/aevon-lab/autosales/internal/dataset"
	"github.com/aevon-lab/autosales/internal/query"
	"github.com/aevon-lab/autosales/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "autosales.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Server.LogLevel()})))
	slog.Info("Loaded config",
		"source_type", cfg.Dataset.SourceType,
		"server_mode", cfg.Server.Mode,
		"saved_queries", len(cfg.QueryLoading.Queries))

	ctx, cancel := context.WithCancel(context.Background())

	// Signal handler triggers the shutdown sequence in run.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	err = run(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("Startup failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}

// run owns every resource opened after config loading so that deferred
// cleanup happens on both the error and the shutdown path.
func run(ctx context.Context, cfg *corecfg.Config) error {
	// 2. Open the record store when the dataset lives in SQL
	var store dataset.Store
	if dataset.IsStoreSource(cfg.Dataset.SourceType) {
		var err error
		store, err = dataset.OpenStore(ctx, cfg.Dataset.SourceType, cfg.Database)
		if err != nil {
			return fmt.Errorf("initialize record store: %w", err)
		}
		defer store.Close()
	}

	// 3. Load the dataset once; any failure is fatal
	src, err := dataset.NewSource(cfg.Dataset, store)
	if err != nil {
		return fmt.Errorf("invalid dataset source: %w", err)
	}
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.Dataset.Timeout)
	table, err := dataset.Load(loadCtx, src)
	cancelLoad()
	if err != nil {
		return fmt.Errorf("load dataset from %s: %w", src.String(), err)
	}

	// 4. Initialize the dashboard and saved queries
	controller := dashboard.NewController(table, dashboard.Config{
		Title:   cfg.Dashboard.Title,
		MinYear: cfg.Dashboard.MinYear,
		MaxYear: cfg.Dashboard.MaxYear,
	})
	querySvc := query.NewService(table, query.NewRepository(cfg.QueryLoading.Queries))

	// 5. Initialize Server
	health := dataset.Health{Table: table}
	if store != nil {
		health.Store = store
	}
	srv := server.New(cfg.Server.Addr(), health, cfg.Server.Mode)
	controller.RegisterRoutes(srv.Engine)
	querySvc.RegisterRoutes(srv.Engine)

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
