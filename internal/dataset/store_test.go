package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aevon-lab/autosales/internal/core/config"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := config.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "autosales.db"), AutoMigrate: true}

	records, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	store, err := OpenStore(ctx, config.SourceSQLite, db)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.ReplaceRecords(ctx, records)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	src, err := NewSource(config.DatasetConfig{SourceType: config.SourceSQLite}, store)
	require.NoError(t, err)
	table, err := Load(ctx, src)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	require.Equal(t, 2, table.Recession().Len())

	require.NoError(t, Health{Table: table, Store: store}.Ping(ctx))
}

func TestOpenStore_UnknownKind(t *testing.T) {
	_, err := OpenStore(context.Background(), config.SourceURL, config.DatabaseConfig{})
	require.ErrorContains(t, err, "no record store")
	require.False(t, IsStoreSource(config.SourceURL))
	require.True(t, IsStoreSource(config.SourcePostgres))
}

func TestSourceForLocation(t *testing.T) {
	require.Equal(t, "https://example.com/sales.csv", SourceForLocation("https://example.com/sales.csv", time.Second).String())
	require.Equal(t, "file:./sales.csv", SourceForLocation("./sales.csv", time.Second).String())
}
