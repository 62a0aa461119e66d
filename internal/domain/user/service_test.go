package user_test

import (
	"context"
	"testing"

	"github.com/chemviz/equipview/internal/domain/user"
	"github.com/chemviz/equipview/internal/repository"
	"github.com/chemviz/equipview/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	repo.On("InsertToken", ctx, mock.Anything, mock.Anything).Return(nil)

	svc := user.NewService(repo, nil)
	u, token, err := svc.Register(ctx, user.RegisterRequest{
		Username: "operator",
		Email:    "op@plant.example",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Len(t, token, 64)
	require.NotEqual(t, "secret1", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc := user.NewService(&mocks.UserRepository{}, nil)
	ctx := context.Background()

	cases := []user.RegisterRequest{
		{Username: "ab", Email: "op@plant.example", Password: "secret1"},
		{Username: "operator", Email: "op@plant.example", Password: "short"},
		{Username: "operator", Email: "not-an-email", Password: "secret1"},
	}
	for _, req := range cases {
		_, _, err := svc.Register(ctx, req)
		require.ErrorIs(t, err, user.ErrInvalidInput)
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	svc := user.NewService(repo, nil)
	_, _, err := svc.Register(ctx, user.RegisterRequest{
		Username: "operator",
		Email:    "op@plant.example",
		Password: "secret1",
	})
	require.ErrorIs(t, err, user.ErrUsernameTaken)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mocks.UserRepository{}
	repo.On("GetByUsername", ctx, "operator").Return(&user.User{
		ID: "u1", Username: "operator", PasswordHash: string(hash),
	}, nil)
	repo.On("InsertToken", ctx, mock.Anything, "u1").Return(nil)

	svc := user.NewService(repo, nil)
	u, token, err := svc.Login(ctx, "operator", "secret1")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.NotEmpty(t, token)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mocks.UserRepository{}
	repo.On("GetByUsername", ctx, "operator").Return(&user.User{
		ID: "u1", Username: "operator", PasswordHash: string(hash),
	}, nil)

	svc := user.NewService(repo, nil)
	_, _, err = svc.Login(ctx, "operator", "wrong")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_LoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("GetByUsername", ctx, "ghost").Return((*user.User)(nil), repository.ErrNotFound)

	svc := user.NewService(repo, nil)
	_, _, err := svc.Login(ctx, "ghost", "secret1")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestUserService_ResolveToken(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("GetUserIDByToken", ctx, user.HashToken("tok")).Return("u1", nil)

	svc := user.NewService(repo, nil)
	userID, err := svc.ResolveToken(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, "u1", userID)
}

func TestUserService_LogoutUnknownTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.UserRepository{}
	repo.On("DeleteToken", ctx, mock.Anything).Return(repository.ErrNotFound)

	svc := user.NewService(repo, nil)
	require.NoError(t, svc.Logout(ctx, "unknown"))
}
