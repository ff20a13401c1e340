package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/pawlig/go-dog-registry/internal/api"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the credential store as seen by the auth service: a
// read-only lookup of the stored password hash by exact email match.
type AuthRepo interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool api.PgxPool
}

func NewPostgresAuthRepo(pgpool api.PgxPool, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// GetUserByEmail returns types.ErrNotFound when no user matches, so the
// caller can fail closed without leaking which part of the credential
// pair was wrong.
func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	var user types.User
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, email, password_hash FROM users WHERE email = $1",
		email).Scan(&user.ID, &user.Email, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: query failed: %w", err)
	}
	return &user, nil
}
