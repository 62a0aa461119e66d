package report_test

import (
	"testing"
	"time"

	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/chemviz/equipview/internal/report"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Render(t *testing.T) {
	records := []dataset.EquipmentRecord{
		{Name: "Pump-1", Type: "Pump", Flowrate: 120, Pressure: 5.2, Temperature: 110},
		{Name: "Compressor-1", Type: "Compressor", Flowrate: 95, Pressure: 8.4, Temperature: 95},
	}
	ds := &dataset.Dataset{
		ID:         "d1",
		OwnerID:    "u1",
		Name:       "plant.csv",
		UploadedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Records:    records,
		Aggregate:  dataset.ComputeAggregate(records),
	}

	out, err := report.NewGenerator().Render(ds)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerator_RenderManyRows(t *testing.T) {
	records := make([]dataset.EquipmentRecord, 200)
	for i := range records {
		records[i] = dataset.EquipmentRecord{Name: "P", Type: "Pump", Flowrate: 1, Pressure: 1, Temperature: 1}
	}
	ds := &dataset.Dataset{
		ID:         "d1",
		Name:       "big.csv",
		UploadedAt: time.Now(),
		Records:    records,
		Aggregate:  dataset.ComputeAggregate(records),
	}

	out, err := report.NewGenerator().Render(ds)
	require.NoError(t, err)
	require.NotEmpty(t, out)
}
