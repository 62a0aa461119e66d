package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chemviz/equipview/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service handles account and token operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// RegisterRequest defines account creation inputs.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// ValidateRegisterRequest checks registration inputs. Username must be
// 3-150 characters, password at least 6, email minimally well-formed.
func ValidateRegisterRequest(req RegisterRequest) error {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 150 {
		return fmt.Errorf("%w: username must be 3-150 characters", ErrInvalidInput)
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	email := strings.TrimSpace(req.Email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}

// Register creates an account and returns it with a fresh auth token.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	if err := ValidateRegisterRequest(req); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "user_id", u.ID, "username", u.Username)
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh auth token.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("getting user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}

// Logout invalidates the given token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.repo.DeleteToken(ctx, HashToken(token)); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

// Get fetches a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// ResolveToken maps a bearer token to its owning user ID.
func (s *Service) ResolveToken(ctx context.Context, token string) (string, error) {
	userID, err := s.repo.GetUserIDByToken(ctx, HashToken(token))
	if err != nil || userID == "" {
		return "", ErrInvalidCredentials
	}
	return userID, nil
}

func (s *Service) issueToken(ctx context.Context, userID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	token := hex.EncodeToString(raw)

	if err := s.repo.InsertToken(ctx, HashToken(token), userID); err != nil {
		return "", fmt.Errorf("storing token: %w", err)
	}
	return token, nil
}

// HashToken returns the hex sha256 digest under which a token is stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
