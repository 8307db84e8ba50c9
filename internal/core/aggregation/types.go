package aggregation

import (
	"strconv"

	"github.com/aevon-lab/autosales/internal/core/sales"
	"github.com/shopspring/decimal"
)

// Field names a dataset column usable as a group key or a metric.
// Values match the dataset's column names so chart axes read naturally.
type Field string

const (
	FieldYear                   Field = sales.ColumnYear
	FieldMonth                  Field = sales.ColumnMonth
	FieldVehicleType            Field = sales.ColumnVehicleType
	FieldUnemploymentRate       Field = sales.ColumnUnemploymentRate
	FieldRecession              Field = sales.ColumnRecession
	FieldAutomobileSales        Field = sales.ColumnAutomobileSales
	FieldAdvertisingExpenditure Field = sales.ColumnAdvertisingExpenditure
)

var groupFields = map[Field]bool{
	FieldYear:             true,
	FieldMonth:            true,
	FieldVehicleType:      true,
	FieldUnemploymentRate: true,
	FieldRecession:        true,
}

var metricFields = map[Field]bool{
	FieldAutomobileSales:        true,
	FieldAdvertisingExpenditure: true,
}

// IsGroupField reports whether f can be used as a grouping key.
func IsGroupField(f Field) bool { return groupFields[f] }

// IsMetricField reports whether f can be reduced by an operator.
func IsMetricField(f Field) bool { return metricFields[f] }

// GroupKey holds the values of every groupable field. Fields that are not
// part of a grouping stay at their zero value, so the struct is a valid map key
// for any combination of group fields.
type GroupKey struct {
	Year             int
	Month            sales.Month
	VehicleType      string
	UnemploymentRate float64
	Recession        bool
}

func keyFor(rec sales.Record, groupBy []Field) GroupKey {
	var k GroupKey
	for _, f := range groupBy {
		switch f {
		case FieldYear:
			k.Year = rec.Year
		case FieldMonth:
			k.Month = rec.Month
		case FieldVehicleType:
			k.VehicleType = rec.VehicleType
		case FieldUnemploymentRate:
			k.UnemploymentRate = rec.UnemploymentRate
		case FieldRecession:
			k.Recession = rec.Recession
		}
	}
	return k
}

// Row is one reduced group.
type Row struct {
	Key   GroupKey        `json:"-"`
	Value decimal.Decimal `json:"value"`
	Count int64           `json:"count"`
}

// Label renders a group or metric field of the row as text.
// Unknown fields render as the empty string.
func (r Row) Label(f Field) string {
	switch f {
	case FieldYear:
		return strconv.Itoa(r.Key.Year)
	case FieldMonth:
		return r.Key.Month.String()
	case FieldVehicleType:
		return r.Key.VehicleType
	case FieldUnemploymentRate:
		return strconv.FormatFloat(r.Key.UnemploymentRate, 'f', -1, 64)
	case FieldRecession:
		if r.Key.Recession {
			return "1"
		}
		return "0"
	}
	if IsMetricField(f) {
		return r.Value.String()
	}
	return ""
}

// Result is an ordered group-by/reduce view over a table.
type Result struct {
	GroupBy  []Field `json:"group_by"`
	Metric   Field   `json:"metric"`
	Operator string  `json:"operator"`
	Rows     []Row   `json:"rows"`
}

// Len returns the number of groups.
func (r Result) Len() int { return len(r.Rows) }

// IsEmpty reports whether no rows matched.
func (r Result) IsEmpty() bool { return len(r.Rows) == 0 }

// Groups reports whether f is one of the result's group keys.
func (r Result) Groups(f Field) bool {
	for _, g := range r.GroupBy {
		if g == f {
			return true
		}
	}
	return false
}

// Total sums the reduced values of all rows.
func (r Result) Total() decimal.Decimal {
	total := decimal.Zero
	for _, row := range r.Rows {
		total = total.Add(row.Value)
	}
	return total
}
