package dataset_test

import (
	"context"
	"testing"

	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/chemviz/equipview/internal/repository"
	"github.com/chemviz/equipview/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validTable() dataset.Table {
	return dataset.Table{
		Header: []string{"Equipment Name", "Type", "Flowrate", "Pressure", "Temperature"},
		Rows: [][]string{
			{"Pump-1", "Pump", "120", "5.2", "110"},
			{"Compressor-1", "Compressor", "95", "8.4", "95"},
		},
	}
}

func TestDatasetService_Ingest(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DatasetRepository{}
	repo.On("StoreAndEvict", ctx, mock.Anything, 5).Return(0, nil)

	svc := dataset.NewService(repo, dataset.DefaultLimits(), nil, nil)
	ds, err := svc.Ingest(ctx, "owner1", "plant.csv", validTable())
	require.NoError(t, err)
	require.NotEmpty(t, ds.ID)
	require.Equal(t, "owner1", ds.OwnerID)
	require.Equal(t, "plant.csv", ds.Name)
	require.False(t, ds.UploadedAt.IsZero())
	require.Equal(t, 2, ds.Aggregate.TotalRecords)
	require.InDelta(t, 107.5, ds.Aggregate.AvgFlowrate, 1e-9)
	require.Len(t, ds.Records, 2)

	stored := repo.Calls[0].Arguments.Get(1).(*dataset.Dataset)
	require.Equal(t, ds.ID, stored.ID)
}

func TestDatasetService_IngestValidationFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DatasetRepository{}

	table := validTable()
	table.Rows = [][]string{{"Pump-1", "Pump", "-5", "5.2", "110"}}

	svc := dataset.NewService(repo, dataset.DefaultLimits(), nil, nil)
	_, err := svc.Ingest(ctx, "owner1", "plant.csv", table)

	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, dataset.KindInvalidRows, verr.Kind)
	repo.AssertNotCalled(t, "StoreAndEvict", mock.Anything, mock.Anything, mock.Anything)
}

func TestDatasetService_IngestRequiresOwner(t *testing.T) {
	repo := &mocks.DatasetRepository{}
	svc := dataset.NewService(repo, dataset.DefaultLimits(), nil, nil)

	_, err := svc.Ingest(context.Background(), "  ", "plant.csv", validTable())
	require.ErrorIs(t, err, dataset.ErrInvalidInput)
}

func TestDatasetService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DatasetRepository{}
	repo.On("Get", ctx, "owner1", "missing").Return((*dataset.Dataset)(nil), repository.ErrNotFound)

	svc := dataset.NewService(repo, dataset.DefaultLimits(), nil, nil)
	_, err := svc.Get(ctx, "owner1", "missing")
	require.ErrorIs(t, err, dataset.ErrDatasetNotFound)
}

func TestDatasetService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DatasetRepository{}
	repo.On("Delete", ctx, "owner1", "missing").Return(repository.ErrNotFound)

	svc := dataset.NewService(repo, dataset.DefaultLimits(), nil, nil)
	err := svc.Delete(ctx, "owner1", "missing")
	require.ErrorIs(t, err, dataset.ErrDatasetNotFound)
}

func TestDatasetService_ListRecent(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DatasetRepository{}
	summaries := []dataset.Summary{{ID: "d1", Name: "plant.csv", TotalRecords: 2}}
	repo.On("ListRecent", ctx, "owner1", 5).Return(summaries, nil)

	svc := dataset.NewService(repo, dataset.DefaultLimits(), nil, nil)
	got, err := svc.ListRecent(ctx, "owner1")
	require.NoError(t, err)
	require.Equal(t, summaries, got)
}
