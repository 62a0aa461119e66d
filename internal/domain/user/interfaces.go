package user

import "context"

// Repository provides persistence for users and their auth tokens. Tokens
// are stored hashed; the plain token never reaches the repository.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	InsertToken(ctx context.Context, tokenHash, userID string) error
	DeleteToken(ctx context.Context, tokenHash string) error
	GetUserIDByToken(ctx context.Context, tokenHash string) (string, error)
}
