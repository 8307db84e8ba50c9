package sales

import (
	"slices"
	"sort"
)

// Table is an ordered, read-only collection of records.
// Every method that narrows the table returns a new Table.
type Table struct {
	records []Record
}

// NewTable copies records into a new table.
func NewTable(records []Record) *Table {
	return &Table{records: slices.Clone(records)}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns the i-th record.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of all records in load order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	return slices.Clone(t.records)
}

// Filter returns the records for which keep returns true, in order.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := make([]Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if keep(t.records[i]) {
			out = append(out, t.records[i])
		}
	}
	return &Table{records: out}
}

// Recession returns only the rows flagged as recession periods.
func (t *Table) Recession() *Table {
	return t.Filter(func(r Record) bool { return r.Recession })
}

// ForYear returns only the rows observed in year.
func (t *Table) ForYear(year int) *Table {
	return t.Filter(func(r Record) bool { return r.Year == year })
}

// Years returns the distinct years in ascending order.
func (t *Table) Years() []int {
	seen := make(map[int]struct{})
	var years []int
	for i := 0; i < t.Len(); i++ {
		y := t.records[i].Year
		if _, ok := seen[y]; !ok {
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// VehicleTypes returns the distinct vehicle types in lexical order.
func (t *Table) VehicleTypes() []string {
	seen := make(map[string]struct{})
	var types []string
	for i := 0; i < t.Len(); i++ {
		v := t.records[i].VehicleType
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			types = append(types, v)
		}
	}
	sort.Strings(types)
	return types
}
