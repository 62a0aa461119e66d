package dataset

import (
	"context"
	"time"
)

// Repository provides persistence for datasets. Implementations must make
// StoreAndEvict atomic per owner: the insert and the count-then-delete
// sequence run under a single transaction so the retention window holds
// regardless of concurrent inserts.
type Repository interface {
	// StoreAndEvict persists ds, then deletes the owner's oldest datasets
	// (smallest uploaded_at, ties broken by smallest id) until at most
	// window remain. Returns the number of datasets evicted.
	StoreAndEvict(ctx context.Context, ds *Dataset, window int) (int, error)
	Get(ctx context.Context, ownerID, id string) (*Dataset, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListRecent(ctx context.Context, ownerID string, limit int) ([]Summary, error)
}

// Observer receives ingestion outcomes for instrumentation. All methods
// must be safe for concurrent use.
type Observer interface {
	UploadAccepted(elapsed time.Duration)
	UploadRejected(kind ValidationKind)
	DatasetsEvicted(count int)
	DatasetDeleted()
}
