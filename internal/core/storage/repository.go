package storage

import (
	"context"

	"github.com/aevon-lab/autosales/internal/core/sales"
)

// RecordReader reads the persisted sales dataset.
type RecordReader interface {
	// LoadRecords returns every stored record in insertion order.
	LoadRecords(ctx context.Context) ([]sales.Record, error)
}

// RecordWriter replaces the persisted sales dataset.
type RecordWriter interface {
	// ReplaceRecords atomically swaps the stored dataset for records and
	// returns how many rows were written.
	ReplaceRecords(ctx context.Context, records []sales.Record) (int, error)
}

// RecordStore is a RecordReader and RecordWriter backed by one database.
type RecordStore interface {
	RecordReader
	RecordWriter
}
