package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aevon-lab/autosales/internal/core/sales"
	"github.com/aevon-lab/autosales/internal/core/storage"
	_ "modernc.org/sqlite" // Register sqlite driver
)

const (
	queryLoadRecords = `
		SELECT
			year, month, vehicle_type, automobile_sales,
			advertising_expenditure, recession, unemployment_rate
		FROM automobile_sales
		ORDER BY id ASC
	`

	queryDeleteRecords = `DELETE FROM automobile_sales`

	queryInsertRecord = `
		INSERT INTO automobile_sales (
			year, month, vehicle_type, automobile_sales,
			advertising_expenditure, recession, unemployment_rate
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
)

var _ storage.RecordStore = (*Adapter)(nil)

// Adapter implements storage.RecordStore on a local SQLite file.
type Adapter struct {
	db *sql.DB
}

// NewAdapter opens (creating if needed) the SQLite database at path.
// Run migrations.RunSQLiteMigrations on DB() before reading.
func NewAdapter(path string) (*Adapter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	slog.Info("[SQLite] Database opened", "path", path)
	return &Adapter{db: db}, nil
}

// LoadRecords reads the whole dataset ordered by import position.
func (a *Adapter) LoadRecords(ctx context.Context) ([]sales.Record, error) {
	rows, err := a.db.QueryContext(ctx, queryLoadRecords)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []sales.Record
	for rows.Next() {
		rec, err := scanRecordRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// ReplaceRecords deletes the stored dataset and inserts records in one transaction.
func (a *Adapter) ReplaceRecords(ctx context.Context, records []sales.Record) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("replace records: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, queryDeleteRecords); err != nil {
		return 0, fmt.Errorf("replace records: delete: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, queryInsertRecord)
	if err != nil {
		return 0, fmt.Errorf("replace records: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.Year,
			int(rec.Month),
			rec.VehicleType,
			rec.AutomobileSales.String(),
			rec.AdvertisingExpenditure.String(),
			rec.Recession,
			rec.UnemploymentRate,
		); err != nil {
			return 0, fmt.Errorf("replace records: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("replace records: commit: %w", err)
	}

	slog.Info("[SQLite] Replaced records", "count", len(records))
	return len(records), nil
}

// Ping reports whether the database file is usable.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// DB returns the underlying database handle for migrations.
func (a *Adapter) DB() *sql.DB {
	return a.db
}

func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
