package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pawlig/go-dog-registry/internal/api"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo defines the contract for user data persistence.
type UserRepo interface {
	// GetAllUsers retrieves every registered user.
	GetAllUsers(ctx context.Context) ([]types.User, error)

	// GetUserByID returns types.ErrNotFound if the user doesn't exist.
	GetUserByID(ctx context.Context, id int) (*types.User, error)

	// CreateUser inserts a new user. Returns types.ErrConflict when the
	// email is already registered; the unique constraint resolves
	// concurrent duplicate registrations to exactly one winner.
	CreateUser(ctx context.Context, email, passwordHash string) error

	// DeleteUser removes a user by id. Returns types.ErrNotFound when
	// no row was deleted.
	DeleteUser(ctx context.Context, id int) error
}

const uniqueViolationCode = "23505"

type PostgresUserRepo struct {
	logger *slog.Logger
	pgpool api.PgxPool
}

func NewPostgresUserRepo(pgpool api.PgxPool, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresUserRepo) GetAllUsers(ctx context.Context) ([]types.User, error) {
	rows, err := r.pgpool.Query(ctx,
		"SELECT id, email, password_hash, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("get all users: query failed: %w", err)
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		var u types.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("get all users: scan failed: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get all users: rows iteration failed: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, id int) (*types.User, error) {
	var u types.User
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE id = $1",
		id).Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: query failed: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) CreateUser(ctx context.Context, email, passwordHash string) error {
	_, err := r.pgpool.Exec(ctx,
		"INSERT INTO users (email, password_hash) VALUES ($1, $2)",
		email, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return types.ErrConflict
		}
		return fmt.Errorf("create user: insert failed: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) DeleteUser(ctx context.Context, id int) error {
	tag, err := r.pgpool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user: db delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
