package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pawlig/go-dog-registry/app/observability/metrics"
	"github.com/pawlig/go-dog-registry/internal/api/auth"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService exposes the user collaborator's operations: listing,
// lookup, registration and deletion. There is no update operation.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]types.UserResponse, error)
	GetUser(ctx context.Context, id int) (*types.UserResponse, error)
	Register(ctx context.Context, email, password string) error
	DeleteUser(ctx context.Context, id int) error
}

type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
}

func NewUserService(repo UserRepo, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *UserServiceImpl) GetAllUsers(ctx context.Context) ([]types.UserResponse, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, err
	}

	out := make([]types.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, types.UserResponse{ID: u.ID, Email: u.Email})
	}
	return out, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id int) (*types.UserResponse, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		}
		return nil, err
	}
	return &types.UserResponse{ID: u.ID, Email: u.Email}, nil
}

// Register hashes the password and stores the new user. The plaintext
// never reaches the repository.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) error {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("register: failed to hash password: %w", err)
	}

	if err := s.repo.CreateUser(ctx, email, hashed); err != nil {
		if !errors.Is(err, types.ErrConflict) {
			metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		}
		return err
	}
	return nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		}
		return err
	}
	return nil
}
