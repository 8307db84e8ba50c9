package dataset

import (
	"context"
	"fmt"

	"github.com/aevon-lab/autosales/internal/core/config"
	"github.com/aevon-lab/autosales/internal/core/storage"
	"github.com/aevon-lab/autosales/internal/core/storage/postgres"
	"github.com/aevon-lab/autosales/internal/core/storage/sqlite"
	"github.com/aevon-lab/autosales/internal/migrations"
)

// Store is a record store with a connection lifecycle.
type Store interface {
	storage.RecordStore
	Ping(ctx context.Context) error
	Close() error
}

// IsStoreSource reports whether the source type reads from a SQL store.
func IsStoreSource(sourceType string) bool {
	return sourceType == config.SourcePostgres || sourceType == config.SourceSQLite
}

// OpenStore connects to the SQL store for kind and brings its schema up to date.
func OpenStore(ctx context.Context, kind string, db config.DatabaseConfig) (Store, error) {
	switch kind {
	case config.SourcePostgres:
		adapter, err := postgres.NewAdapter(db.DSN, db.MaxOpenConns, db.MaxIdleConns)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunMigrations(adapter.DB(), db.AutoMigrate); err != nil {
			adapter.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		if err := adapter.Prepare(ctx); err != nil {
			adapter.Close()
			return nil, err
		}
		return adapter, nil

	case config.SourceSQLite:
		adapter, err := sqlite.NewAdapter(db.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunSQLiteMigrations(adapter.DB(), db.AutoMigrate); err != nil {
			adapter.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		return adapter, nil

	default:
		return nil, fmt.Errorf("no record store for source type %q", kind)
	}
}
