package aggregation

import (
	"github.com/shopspring/decimal"
)

// Supported aggregation operators.
const (
	OpSum   = "sum"
	OpMean  = "mean"
	OpCount = "count"
	OpMin   = "min"
	OpMax   = "max"
)

// Accumulator is the running state of one group.
// Value is the running sum for sum/mean, the extreme for min/max, and unused for count.
type Accumulator struct {
	Value decimal.Decimal
	Count int64
}

// Aggregator defines the reduce semantics of an aggregation operator.
// To add a new operator: implement this interface and register it in Operators.
type Aggregator interface {
	// Initial returns the accumulator after the first row of a group.
	Initial(incoming decimal.Decimal) Accumulator

	// Apply folds an incoming value into an existing accumulator.
	Apply(current Accumulator, incoming decimal.Decimal) Accumulator

	// Result turns the accumulator into the group's reported value.
	Result(acc Accumulator) decimal.Decimal
}

// Operators is the registry of all supported aggregation operators.
var Operators = map[string]Aggregator{
	OpSum:   sumAgg{},
	OpMean:  meanAgg{},
	OpCount: countAgg{},
	OpMin:   minAgg{},
	OpMax:   maxAgg{},
}

// ValidOperator reports whether op is a registered aggregation operator.
func ValidOperator(op string) bool {
	_, ok := Operators[op]
	return ok
}

// sumAgg accumulates the sum of incoming values.
type sumAgg struct{}

func (sumAgg) Initial(v decimal.Decimal) Accumulator { return Accumulator{Value: v, Count: 1} }
func (sumAgg) Apply(cur Accumulator, inc decimal.Decimal) Accumulator {
	return Accumulator{Value: cur.Value.Add(inc), Count: cur.Count + 1}
}
func (sumAgg) Result(acc Accumulator) decimal.Decimal { return acc.Value }

// meanAgg keeps sum and count and divides on Result.
type meanAgg struct{}

func (meanAgg) Initial(v decimal.Decimal) Accumulator { return Accumulator{Value: v, Count: 1} }
func (meanAgg) Apply(cur Accumulator, inc decimal.Decimal) Accumulator {
	return Accumulator{Value: cur.Value.Add(inc), Count: cur.Count + 1}
}
func (meanAgg) Result(acc Accumulator) decimal.Decimal {
	if acc.Count == 0 {
		return decimal.Zero
	}
	return acc.Value.Div(decimal.NewFromInt(acc.Count))
}

// countAgg counts rows. The incoming value is ignored.
type countAgg struct{}

func (countAgg) Initial(_ decimal.Decimal) Accumulator { return Accumulator{Count: 1} }
func (countAgg) Apply(cur Accumulator, _ decimal.Decimal) Accumulator {
	return Accumulator{Count: cur.Count + 1}
}
func (countAgg) Result(acc Accumulator) decimal.Decimal { return decimal.NewFromInt(acc.Count) }

// minAgg tracks the minimum value seen.
type minAgg struct{}

func (minAgg) Initial(v decimal.Decimal) Accumulator { return Accumulator{Value: v, Count: 1} }
func (minAgg) Apply(cur Accumulator, inc decimal.Decimal) Accumulator {
	cur.Count++
	if inc.LessThan(cur.Value) {
		cur.Value = inc
	}
	return cur
}
func (minAgg) Result(acc Accumulator) decimal.Decimal { return acc.Value }

// maxAgg tracks the maximum value seen.
type maxAgg struct{}

func (maxAgg) Initial(v decimal.Decimal) Accumulator { return Accumulator{Value: v, Count: 1} }
func (maxAgg) Apply(cur Accumulator, inc decimal.Decimal) Accumulator {
	cur.Count++
	if inc.GreaterThan(cur.Value) {
		cur.Value = inc
	}
	return cur
}
func (maxAgg) Result(acc Accumulator) decimal.Decimal { return acc.Value }
