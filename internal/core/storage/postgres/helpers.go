package postgres

import (
	"fmt"
	"math"

	"github.com/aevon-lab/autosales/internal/core/sales"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRecordRow scans one automobile_sales row.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanRecordRow(row scanner) (sales.Record, error) {
	var rec sales.Record
	var month int

	err := row.Scan(
		&rec.Year,
		&month,
		&rec.VehicleType,
		&rec.AutomobileSales,
		&rec.AdvertisingExpenditure,
		&rec.Recession,
		&rec.UnemploymentRate,
	)
	if err != nil {
		return sales.Record{}, fmt.Errorf("failed to scan record row: %w", err)
	}

	rec.Month = sales.Month(month)
	if !rec.Month.Valid() {
		return sales.Record{}, fmt.Errorf("invalid month %d in stored record", month)
	}
	if math.IsNaN(rec.UnemploymentRate) || math.IsInf(rec.UnemploymentRate, 0) {
		return sales.Record{}, fmt.Errorf("non-finite unemployment rate in stored record")
	}
	return rec, nil
}
