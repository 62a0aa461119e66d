package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chemviz/equipview/internal/repository"
	"github.com/google/uuid"
)

// Limits bounds a single ingestion.
type Limits struct {
	// MaxRows is the maximum number of data rows per upload.
	MaxRows int
	// RetentionWindow is the number of datasets kept per owner.
	RetentionWindow int
}

// DefaultLimits returns the production bounds: 10000 rows per upload, 5
// datasets retained per owner.
func DefaultLimits() Limits {
	return Limits{MaxRows: 10000, RetentionWindow: 5}
}

// Service handles dataset ingestion and retrieval.
type Service struct {
	repo     Repository
	limits   Limits
	observer Observer
	logger   *slog.Logger
}

// NewService creates a new dataset service. observer may be nil.
func NewService(repo Repository, limits Limits, observer Observer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, limits: limits, observer: observer, logger: logger}
}

// Ingest validates the table, computes its aggregate, and persists the
// result as a new dataset for ownerID, evicting the owner's oldest datasets
// beyond the retention window. On validation failure nothing is persisted
// and the returned error unwraps to *ValidationError.
func (s *Service) Ingest(ctx context.Context, ownerID, filename string, table Table) (*Dataset, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrInvalidInput
	}

	start := time.Now()

	records, err := Validate(table, s.limits.MaxRows)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && s.observer != nil {
			s.observer.UploadRejected(verr.Kind)
		}
		return nil, err
	}

	ds := &Dataset{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       filename,
		UploadedAt: time.Now().UTC(),
		Records:    records,
		Aggregate:  ComputeAggregate(records),
	}

	evicted, err := s.repo.StoreAndEvict(ctx, ds, s.limits.RetentionWindow)
	if err != nil {
		return nil, fmt.Errorf("storing dataset: %w", err)
	}

	if s.observer != nil {
		s.observer.UploadAccepted(time.Since(start))
		if evicted > 0 {
			s.observer.DatasetsEvicted(evicted)
		}
	}
	s.logger.Info("dataset ingested",
		"dataset_id", ds.ID,
		"owner_id", ownerID,
		"records", ds.Aggregate.TotalRecords,
		"evicted", evicted,
	)

	return ds, nil
}

// Get fetches a dataset with its records. Returns ErrDatasetNotFound when
// the dataset is absent or owned by a different identity.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Dataset, error) {
	ds, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("getting dataset: %w", err)
	}
	return ds, nil
}

// Delete removes a dataset owned by ownerID.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDatasetNotFound
		}
		return fmt.Errorf("deleting dataset: %w", err)
	}
	if s.observer != nil {
		s.observer.DatasetDeleted()
	}
	s.logger.Info("dataset deleted", "dataset_id", id, "owner_id", ownerID)
	return nil
}

// ListRecent returns the owner's datasets, newest first, bounded by the
// retention window.
func (s *Service) ListRecent(ctx context.Context, ownerID string) ([]Summary, error) {
	summaries, err := s.repo.ListRecent(ctx, ownerID, s.limits.RetentionWindow)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	return summaries, nil
}
