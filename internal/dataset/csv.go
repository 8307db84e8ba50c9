package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aevon-lab/autosales/internal/core/sales"
	"github.com/shopspring/decimal"
)

// columnIndex maps each required column onto its position in a CSV row.
type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q in header", ErrDataUnavailable, strings.TrimSpace(h))
		}
		byName[name] = i
	}

	idx := make(columnIndex, len(sales.RequiredColumns))
	for _, col := range sales.RequiredColumns {
		i, ok := byName[strings.ToLower(col)]
		if !ok {
			return nil, fmt.Errorf("%w: %w: %q", ErrDataUnavailable, ErrMissingColumn, col)
		}
		idx[col] = i
	}
	return idx, nil
}

// ParseCSV reads a headered CSV into records. Extra columns are ignored,
// header names match case-insensitively and cells are whitespace-trimmed.
func ParseCSV(r io.Reader) ([]sales.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty dataset, no header row", ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrDataUnavailable, err)
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var records []sales.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(row) {
			continue
		}

		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrDataUnavailable, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string, idx columnIndex) (sales.Record, error) {
	cell := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("column %s: missing cell", col)
		}
		return strings.TrimSpace(row[i]), nil
	}

	var rec sales.Record

	v, err := cell(sales.ColumnYear)
	if err != nil {
		return rec, err
	}
	if rec.Year, err = strconv.Atoi(v); err != nil {
		return rec, fmt.Errorf("column %s: invalid year %q", sales.ColumnYear, v)
	}

	if v, err = cell(sales.ColumnMonth); err != nil {
		return rec, err
	}
	if rec.Month, err = sales.ParseMonth(v); err != nil {
		return rec, fmt.Errorf("column %s: %w", sales.ColumnMonth, err)
	}

	if v, err = cell(sales.ColumnVehicleType); err != nil {
		return rec, err
	}
	if v == "" {
		return rec, fmt.Errorf("column %s: empty vehicle type", sales.ColumnVehicleType)
	}
	rec.VehicleType = v

	if v, err = cell(sales.ColumnAutomobileSales); err != nil {
		return rec, err
	}
	if rec.AutomobileSales, err = decimal.NewFromString(v); err != nil {
		return rec, fmt.Errorf("column %s: invalid number %q", sales.ColumnAutomobileSales, v)
	}

	if v, err = cell(sales.ColumnAdvertisingExpenditure); err != nil {
		return rec, err
	}
	if rec.AdvertisingExpenditure, err = decimal.NewFromString(v); err != nil {
		return rec, fmt.Errorf("column %s: invalid number %q", sales.ColumnAdvertisingExpenditure, v)
	}

	if v, err = cell(sales.ColumnRecession); err != nil {
		return rec, err
	}
	if rec.Recession, err = parseFlag(v); err != nil {
		return rec, fmt.Errorf("column %s: %w", sales.ColumnRecession, err)
	}

	if v, err = cell(sales.ColumnUnemploymentRate); err != nil {
		return rec, err
	}
	if rec.UnemploymentRate, err = strconv.ParseFloat(v, 64); err != nil {
		return rec, fmt.Errorf("column %s: invalid number %q", sales.ColumnUnemploymentRate, v)
	}
	// Non-finite rates cannot be used as group keys.
	if math.IsNaN(rec.UnemploymentRate) || math.IsInf(rec.UnemploymentRate, 0) {
		return rec, fmt.Errorf("column %s: non-finite rate %q", sales.ColumnUnemploymentRate, v)
	}

	return rec, nil
}

// parseFlag accepts 0/1, 0.0/1.0 and boolean spellings.
func parseFlag(v string) (bool, error) {
	if b, err := strconv.ParseBool(v); err == nil {
		return b, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || (f != 0 && f != 1) {
		return false, fmt.Errorf("invalid flag %q (want 0 or 1)", v)
	}
	return f == 1, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
