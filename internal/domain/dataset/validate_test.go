package dataset_test

import (
	"fmt"
	"testing"

	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/stretchr/testify/require"
)

func validHeader() []string {
	return []string{"Equipment Name", "Type", "Flowrate", "Pressure", "Temperature"}
}

func TestValidate_ValidTable(t *testing.T) {
	table := dataset.Table{
		Header: validHeader(),
		Rows: [][]string{
			{"Pump-1", "Pump", "120", "5.2", "110"},
			{"Compressor-1", "Compressor", "95", "8.4", "95"},
		},
	}

	records, err := dataset.Validate(table, 10000)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, dataset.EquipmentRecord{
		Name: "Pump-1", Type: "Pump", Flowrate: 120, Pressure: 5.2, Temperature: 110,
	}, records[0])
	require.Equal(t, "Compressor-1", records[1].Name)
}

func TestValidate_MissingColumns(t *testing.T) {
	table := dataset.Table{
		Header: []string{"Equipment Name", "Type", "Flowrate", "Temperature"},
		Rows:   [][]string{{"Pump-1", "Pump", "120", "110"}},
	}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, dataset.KindMissingColumns, verr.Kind)
	require.Equal(t, []string{"Pressure"}, verr.MissingColumns)
}

func TestValidate_MissingColumnsReportsAll(t *testing.T) {
	table := dataset.Table{
		Header: []string{"Equipment Name"},
		Rows:   [][]string{{"Pump-1"}},
	}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"Type", "Flowrate", "Pressure", "Temperature"}, verr.MissingColumns)
}

func TestValidate_HeaderIsCaseSensitive(t *testing.T) {
	table := dataset.Table{
		Header: []string{"equipment name", "Type", "Flowrate", "Pressure", "Temperature"},
		Rows:   [][]string{{"Pump-1", "Pump", "120", "5.2", "110"}},
	}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, dataset.KindMissingColumns, verr.Kind)
	require.Equal(t, []string{"Equipment Name"}, verr.MissingColumns)
}

func TestValidate_ExtraColumnsIgnored(t *testing.T) {
	table := dataset.Table{
		Header: []string{"Unit", "Equipment Name", "Type", "Flowrate", "Pressure", "Temperature", "Notes"},
		Rows: [][]string{
			{"A", "Pump-1", "Pump", "120", "5.2", "110", "fine"},
		},
	}

	records, err := dataset.Validate(table, 10000)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Pump-1", records[0].Name)
}

func TestValidate_EmptyTable(t *testing.T) {
	table := dataset.Table{Header: validHeader()}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, dataset.KindEmptyTable, verr.Kind)
}

func TestValidate_TooManyRows(t *testing.T) {
	rows := make([][]string, 0, 11)
	for i := 0; i < 11; i++ {
		rows = append(rows, []string{fmt.Sprintf("Pump-%d", i), "Pump", "1", "1", "1"})
	}
	table := dataset.Table{Header: validHeader(), Rows: rows}

	_, err := dataset.Validate(table, 10)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, dataset.KindTooManyRows, verr.Kind)
	require.Equal(t, 11, verr.RowCount)
	require.Equal(t, 10, verr.RowLimit)
}

func TestValidate_NegativeFlowrate(t *testing.T) {
	table := dataset.Table{
		Header: validHeader(),
		Rows:   [][]string{{"Pump-1", "Pump", "-5", "5.2", "110"}},
	}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, dataset.KindInvalidRows, verr.Kind)
	require.Equal(t, []dataset.RowError{
		{Row: 0, Column: "Flowrate", Reason: dataset.ReasonNegative},
	}, verr.Rows)
}

func TestValidate_NotANumber(t *testing.T) {
	table := dataset.Table{
		Header: validHeader(),
		Rows:   [][]string{{"Pump-1", "Pump", "high", "5.2", "NaN"}},
	}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []dataset.RowError{
		{Row: 0, Column: "Flowrate", Reason: dataset.ReasonNotANumber},
		{Row: 0, Column: "Temperature", Reason: dataset.ReasonNotANumber},
	}, verr.Rows)
}

func TestValidate_EmptyNameAndType(t *testing.T) {
	table := dataset.Table{
		Header: validHeader(),
		Rows:   [][]string{{"   ", "", "120", "5.2", "110"}},
	}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []dataset.RowError{
		{Row: 0, Column: "Equipment Name", Reason: dataset.ReasonEmpty},
		{Row: 0, Column: "Type", Reason: dataset.ReasonEmpty},
	}, verr.Rows)
}

func TestValidate_OneBadRowRejectsAll(t *testing.T) {
	table := dataset.Table{
		Header: validHeader(),
		Rows: [][]string{
			{"Pump-1", "Pump", "120", "5.2", "110"},
			{"Pump-2", "Pump", "abc", "5.2", "110"},
			{"Pump-3", "Pump", "80", "4.0", "100"},
		},
	}

	records, err := dataset.Validate(table, 10000)
	require.Nil(t, records, "no partial output on failure")
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []dataset.RowError{
		{Row: 1, Column: "Flowrate", Reason: dataset.ReasonNotANumber},
	}, verr.Rows)
}

func TestValidate_ShortRow(t *testing.T) {
	table := dataset.Table{
		Header: validHeader(),
		Rows:   [][]string{{"Pump-1", "Pump", "120"}},
	}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []dataset.RowError{
		{Row: 0, Column: "Pressure", Reason: dataset.ReasonNotANumber},
		{Row: 0, Column: "Temperature", Reason: dataset.ReasonNotANumber},
	}, verr.Rows)
}

func TestValidate_InfinityRejected(t *testing.T) {
	table := dataset.Table{
		Header: validHeader(),
		Rows:   [][]string{{"Pump-1", "Pump", "+Inf", "5.2", "110"}},
	}

	_, err := dataset.Validate(table, 10000)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, dataset.ReasonNotANumber, verr.Rows[0].Reason)
}
