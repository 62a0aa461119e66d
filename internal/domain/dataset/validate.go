package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Required column names, matched exactly and case-sensitively against the
// header. Extra columns are ignored.
const (
	ColEquipmentName = "Equipment Name"
	ColType          = "Type"
	ColFlowrate      = "Flowrate"
	ColPressure      = "Pressure"
	ColTemperature   = "Temperature"
)

// RequiredColumns lists the columns every upload must carry, in the order
// they are reported when missing.
var RequiredColumns = []string{ColEquipmentName, ColType, ColFlowrate, ColPressure, ColTemperature}

// Validate checks a decoded table against the equipment schema and returns
// the typed rows in source order. It is a pure function: no side effects,
// no partial output. All missing columns are reported together, and all row
// errors are collected before the table is rejected as a whole.
func Validate(table Table, maxRows int) ([]EquipmentRecord, error) {
	cols := make(map[string]int, len(table.Header))
	for i, name := range table.Header {
		if _, ok := cols[name]; !ok {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Kind: KindMissingColumns, MissingColumns: missing}
	}

	if len(table.Rows) == 0 {
		return nil, &ValidationError{Kind: KindEmptyTable}
	}
	if len(table.Rows) > maxRows {
		return nil, &ValidationError{Kind: KindTooManyRows, RowCount: len(table.Rows), RowLimit: maxRows}
	}

	records := make([]EquipmentRecord, 0, len(table.Rows))
	var rowErrs []RowError
	for i, row := range table.Rows {
		rec, errs := validateRow(i, row, cols)
		if len(errs) > 0 {
			rowErrs = append(rowErrs, errs...)
			continue
		}
		records = append(records, rec)
	}
	if len(rowErrs) > 0 {
		return nil, &ValidationError{Kind: KindInvalidRows, Rows: rowErrs}
	}

	return records, nil
}

func validateRow(index int, row []string, cols map[string]int) (EquipmentRecord, []RowError) {
	var rec EquipmentRecord
	var errs []RowError

	rec.Name = strings.TrimSpace(cell(row, cols[ColEquipmentName]))
	if rec.Name == "" {
		errs = append(errs, RowError{Row: index, Column: ColEquipmentName, Reason: ReasonEmpty})
	}
	rec.Type = strings.TrimSpace(cell(row, cols[ColType]))
	if rec.Type == "" {
		errs = append(errs, RowError{Row: index, Column: ColType, Reason: ReasonEmpty})
	}

	numeric := []struct {
		column string
		dst    *float64
	}{
		{ColFlowrate, &rec.Flowrate},
		{ColPressure, &rec.Pressure},
		{ColTemperature, &rec.Temperature},
	}
	for _, n := range numeric {
		raw := strings.TrimSpace(cell(row, cols[n.column]))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			errs = append(errs, RowError{Row: index, Column: n.column, Reason: ReasonNotANumber})
			continue
		}
		if value < 0 {
			errs = append(errs, RowError{Row: index, Column: n.column, Reason: ReasonNegative})
			continue
		}
		*n.dst = value
	}

	return rec, errs
}

// cell returns the value at idx, or "" when the row is shorter than the
// header. Short rows fail validation through the empty/not-a-number checks.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
