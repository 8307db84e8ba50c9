// Command autosales-import copies the CSV dataset into a SQL record store so
// the dashboard can run with dataset.source_type set to postgres or sqlite.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	corecfg "github.com/aevon-lab/autosales/internal/core/config"
	"github.com/aevon-lab/autosales/internal/core/sales"
	"github.com/aevon-lab/autosales/internal/dataset"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "autosales.yaml", "Path to configuration file")
	from := flag.String("from", corecfg.DefaultDatasetURL, "CSV file path or http(s) URL to import")
	target := flag.String("target", corecfg.SourcePostgres, "Record store to fill: postgres or sqlite")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	_ = godotenv.Load()

	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if !dataset.IsStoreSource(*target) {
		slog.Error("Unsupported import target", "target", *target)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *from, *target); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

// run fetches the CSV and opens the store concurrently, then swaps the
// stored rows in a single transaction.
func run(ctx context.Context, cfg *corecfg.Config, from, target string) error {
	start := time.Now()

	var (
		records []sales.Record
		store   dataset.Store
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(gctx, cfg.Dataset.Timeout)
		defer cancel()

		var err error
		records, err = dataset.SourceForLocation(from, cfg.Dataset.Timeout).Records(fetchCtx)
		return err
	})
	g.Go(func() error {
		var err error
		store, err = dataset.OpenStore(gctx, target, cfg.Database)
		return err
	})
	err := g.Wait()
	if store != nil {
		defer store.Close()
	}
	if err != nil {
		return err
	}

	n, err := store.ReplaceRecords(ctx, records)
	if err != nil {
		return err
	}

	slog.Info("Import complete",
		"from", from,
		"target", target,
		"rows", n,
		"duration", time.Since(start))
	return nil
}
