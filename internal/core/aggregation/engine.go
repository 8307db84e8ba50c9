package aggregation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aevon-lab/autosales/internal/core/sales"
)

var (
	// ErrUnknownOperator is returned for operators missing from Operators.
	ErrUnknownOperator = errors.New("unknown aggregation operator")
	// ErrUnknownField is returned for group or metric fields the engine does not know.
	ErrUnknownField = errors.New("unknown aggregation field")
)

// GroupBy groups the table by the given fields and reduces metric with op.
// Rows are ordered by the group fields in the order given: years and
// unemployment rates ascending, months in calendar order, vehicle types
// lexically. An empty table yields an empty, non-nil row set.
func GroupBy(table *sales.Table, groupBy []Field, metric Field, op string) (Result, error) {
	agg, ok := Operators[op]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	if len(groupBy) == 0 {
		return Result{}, fmt.Errorf("%w: at least one group field is required", ErrUnknownField)
	}
	seen := make(map[Field]bool, len(groupBy))
	for _, f := range groupBy {
		if !IsGroupField(f) {
			return Result{}, fmt.Errorf("%w: %q is not groupable", ErrUnknownField, f)
		}
		if seen[f] {
			return Result{}, fmt.Errorf("%w: %q listed twice", ErrUnknownField, f)
		}
		seen[f] = true
	}
	if !IsMetricField(metric) {
		return Result{}, fmt.Errorf("%w: %q is not a metric", ErrUnknownField, metric)
	}

	accs := make(map[GroupKey]Accumulator)
	var order []GroupKey
	for i := 0; i < table.Len(); i++ {
		rec := table.At(i)
		key := keyFor(rec, groupBy)
		v, _ := MetricValue(rec, metric)
		if cur, exists := accs[key]; exists {
			accs[key] = agg.Apply(cur, v)
			continue
		}
		accs[key] = agg.Initial(v)
		order = append(order, key)
	}

	rows := make([]Row, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		rows = append(rows, Row{Key: key, Value: agg.Result(acc), Count: acc.Count})
	}
	sortRows(rows, groupBy)

	return Result{
		GroupBy:  append([]Field(nil), groupBy...),
		Metric:   metric,
		Operator: op,
		Rows:     rows,
	}, nil
}

func sortRows(rows []Row, groupBy []Field) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, f := range groupBy {
			if c := compareKey(rows[i].Key, rows[j].Key, f); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

func compareKey(a, b GroupKey, f Field) int {
	switch f {
	case FieldYear:
		return compareOrdered(a.Year, b.Year)
	case FieldMonth:
		return compareOrdered(int(a.Month), int(b.Month))
	case FieldVehicleType:
		return strings.Compare(a.VehicleType, b.VehicleType)
	case FieldUnemploymentRate:
		return compareOrdered(a.UnemploymentRate, b.UnemploymentRate)
	case FieldRecession:
		return compareOrdered(boolRank(a.Recession), boolRank(b.Recession))
	}
	return 0
}

func compareOrdered[T int | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// mustGroup runs a fixed, known-valid grouping.
func mustGroup(table *sales.Table, groupBy []Field, metric Field, op string) Result {
	res, err := GroupBy(table, groupBy, metric, op)
	if err != nil {
		panic(fmt.Sprintf("aggregation: invalid built-in grouping: %v", err))
	}
	return res
}

// TotalSalesByYear sums automobile sales per year.
func TotalSalesByYear(table *sales.Table) Result {
	return mustGroup(table, []Field{FieldYear}, FieldAutomobileSales, OpSum)
}

// AvgSalesByYearAndVehicleType averages automobile sales per (year, vehicle type).
func AvgSalesByYearAndVehicleType(table *sales.Table) Result {
	return mustGroup(table, []Field{FieldYear, FieldVehicleType}, FieldAutomobileSales, OpMean)
}

// TotalExpenditureByVehicleType sums advertising expenditure per vehicle type.
func TotalExpenditureByVehicleType(table *sales.Table) Result {
	return mustGroup(table, []Field{FieldVehicleType}, FieldAdvertisingExpenditure, OpSum)
}

// TotalSalesByUnemploymentAndVehicleType sums automobile sales per
// (vehicle type, unemployment rate).
func TotalSalesByUnemploymentAndVehicleType(table *sales.Table) Result {
	return mustGroup(table, []Field{FieldVehicleType, FieldUnemploymentRate}, FieldAutomobileSales, OpSum)
}

// TotalSalesByMonth sums automobile sales per month of year, Jan..Dec.
func TotalSalesByMonth(table *sales.Table, year int) Result {
	return mustGroup(table.ForYear(year), []Field{FieldMonth}, FieldAutomobileSales, OpSum)
}

// AvgSalesByMonth averages automobile sales per month of year, Jan..Dec.
func AvgSalesByMonth(table *sales.Table, year int) Result {
	return mustGroup(table.ForYear(year), []Field{FieldMonth}, FieldAutomobileSales, OpMean)
}

// Recession-period variants. Each one drops non-recession rows before grouping.

func RecessionTotalSalesByYear(table *sales.Table) Result {
	return TotalSalesByYear(table.Recession())
}

func RecessionAvgSalesByYearAndVehicleType(table *sales.Table) Result {
	return AvgSalesByYearAndVehicleType(table.Recession())
}

func RecessionTotalExpenditureByVehicleType(table *sales.Table) Result {
	return TotalExpenditureByVehicleType(table.Recession())
}

func RecessionTotalSalesByUnemploymentAndVehicleType(table *sales.Table) Result {
	return TotalSalesByUnemploymentAndVehicleType(table.Recession())
}
