package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	corecfg "github.com/aevon-lab/autosales/internal/core/config"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsLoadErrorAfterOpeningStore(t *testing.T) {
	cfg := &corecfg.Config{
		Server:   corecfg.ServerConfig{Host: "127.0.0.1", Port: 0, Mode: "release"},
		Dataset:  corecfg.DatasetConfig{SourceType: corecfg.SourceSQLite, Timeout: time.Second},
		Database: corecfg.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "autosales.db"), AutoMigrate: true},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Loading honours the cancelled context, and the opened store is still released.
	err := run(ctx, cfg)
	require.Error(t, err)
	require.ErrorContains(t, err, "load dataset")
}
