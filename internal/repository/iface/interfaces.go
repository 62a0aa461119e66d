package iface

import (
	"context"

	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/chemviz/equipview/internal/domain/user"
)

// DatasetRepository manages dataset persistence
type DatasetRepository interface {
	StoreAndEvict(ctx context.Context, ds *dataset.Dataset, window int) (int, error)
	Get(ctx context.Context, ownerID, id string) (*dataset.Dataset, error)
	Delete(ctx context.Context, ownerID, id string) error
	ListRecent(ctx context.Context, ownerID string, limit int) ([]dataset.Summary, error)
}

// UserRepository manages user and token persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	InsertToken(ctx context.Context, tokenHash, userID string) error
	DeleteToken(ctx context.Context, tokenHash string) error
	GetUserIDByToken(ctx context.Context, tokenHash string) (string, error)
}
