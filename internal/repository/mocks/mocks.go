package mocks

import (
	"context"

	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/chemviz/equipview/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// DatasetRepository is a mock for repository.DatasetRepository.
type DatasetRepository struct {
	mock.Mock
}

func (m *DatasetRepository) StoreAndEvict(ctx context.Context, ds *dataset.Dataset, window int) (int, error) {
	args := m.Called(ctx, ds, window)
	return args.Int(0), args.Error(1)
}

func (m *DatasetRepository) Get(ctx context.Context, ownerID, id string) (*dataset.Dataset, error) {
	args := m.Called(ctx, ownerID, id)
	if ds, ok := args.Get(0).(*dataset.Dataset); ok {
		return ds, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DatasetRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *DatasetRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]dataset.Summary, error) {
	args := m.Called(ctx, ownerID, limit)
	if list, ok := args.Get(0).([]dataset.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) InsertToken(ctx context.Context, tokenHash, userID string) error {
	args := m.Called(ctx, tokenHash, userID)
	return args.Error(0)
}

func (m *UserRepository) DeleteToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *UserRepository) GetUserIDByToken(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}
