package aggregation

import (
	"github.com/aevon-lab/autosales/internal/core/sales"
	"github.com/shopspring/decimal"
)

// MetricValue pulls a numeric metric from a record by field name.
// Returns false for fields that are not metrics.
func MetricValue(rec sales.Record, field Field) (decimal.Decimal, bool) {
	switch field {
	case FieldAutomobileSales:
		return rec.AutomobileSales, true
	case FieldAdvertisingExpenditure:
		return rec.AdvertisingExpenditure, true
	}
	return decimal.Zero, false
}
