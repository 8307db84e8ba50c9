package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/autosales/internal/core/sales"
)

// Load reads the dataset once. There are no retries; callers treat any
// error as fatal. Every failure matches ErrDataUnavailable.
func Load(ctx context.Context, src Source) (*sales.Table, error) {
	start := time.Now()
	slog.Info("[Dataset] Loading", "source", src.String())

	records, err := src.Records(ctx)
	if err != nil {
		if !errors.Is(err, ErrDataUnavailable) {
			err = fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		return nil, err
	}

	table := sales.NewTable(records)
	if table.Len() == 0 {
		slog.Warn("[Dataset] Loaded an empty dataset", "source", src.String())
	}

	slog.Info("[Dataset] Loaded",
		"source", src.String(),
		"rows", table.Len(),
		"years", len(table.Years()),
		"vehicle_types", len(table.VehicleTypes()),
		"duration", time.Since(start))
	return table, nil
}

// Health reports on the loaded dataset and, when present, the backing store.
type Health struct {
	Table *sales.Table
	Store interface {
		Ping(ctx context.Context) error
	}
}

func (h Health) Ping(ctx context.Context) error {
	if h.Table == nil {
		return fmt.Errorf("dataset not loaded")
	}
	if h.Store != nil {
		if err := h.Store.Ping(ctx); err != nil {
			return fmt.Errorf("record store unreachable: %w", err)
		}
	}
	return nil
}

// Rows is the number of loaded records.
func (h Health) Rows() int { return h.Table.Len() }
