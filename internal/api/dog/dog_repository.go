package dog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/pawlig/go-dog-registry/internal/api"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ DogRepo = (*PostgresDogRepo)(nil)

// DogRepo defines the contract for dog record persistence.
type DogRepo interface {
	GetAllDogs(ctx context.Context) ([]types.Dog, error)

	// GetDogByID returns types.ErrNotFound if the dog doesn't exist.
	GetDogByID(ctx context.Context, id int) (*types.Dog, error)

	CreateDog(ctx context.Context, name string, age int) error

	// DeleteDog returns types.ErrNotFound when no row was deleted.
	DeleteDog(ctx context.Context, id int) error
}

type PostgresDogRepo struct {
	logger *slog.Logger
	pgpool api.PgxPool
}

func NewPostgresDogRepo(pgpool api.PgxPool, logger *slog.Logger) *PostgresDogRepo {
	return &PostgresDogRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresDogRepo) GetAllDogs(ctx context.Context) ([]types.Dog, error) {
	rows, err := r.pgpool.Query(ctx,
		"SELECT id, name, age, created_at FROM dogs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("get all dogs: query failed: %w", err)
	}
	defer rows.Close()

	dogs := make([]types.Dog, 0)
	for rows.Next() {
		var d types.Dog
		if err := rows.Scan(&d.ID, &d.Name, &d.Age, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("get all dogs: scan failed: %w", err)
		}
		dogs = append(dogs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get all dogs: rows iteration failed: %w", err)
	}
	return dogs, nil
}

func (r *PostgresDogRepo) GetDogByID(ctx context.Context, id int) (*types.Dog, error) {
	var d types.Dog
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, name, age, created_at FROM dogs WHERE id = $1",
		id).Scan(&d.ID, &d.Name, &d.Age, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("get dog by id: query failed: %w", err)
	}
	return &d, nil
}

func (r *PostgresDogRepo) CreateDog(ctx context.Context, name string, age int) error {
	_, err := r.pgpool.Exec(ctx,
		"INSERT INTO dogs (name, age) VALUES ($1, $2)",
		name, age)
	if err != nil {
		return fmt.Errorf("create dog: insert failed: %w", err)
	}
	return nil
}

func (r *PostgresDogRepo) DeleteDog(ctx context.Context, id int) error {
	tag, err := r.pgpool.Exec(ctx, "DELETE FROM dogs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete dog: db delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrNotFound
	}
	return nil
}
