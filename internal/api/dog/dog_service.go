package dog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pawlig/go-dog-registry/app/observability/metrics"
	"github.com/pawlig/go-dog-registry/internal/types"
)

var _ DogService = (*DogServiceImpl)(nil)

// DogService exposes the dog collaborator's operations. All of them sit
// behind the access-token guard.
type DogService interface {
	GetAllDogs(ctx context.Context) ([]types.DogResponse, error)
	GetDog(ctx context.Context, id int) (*types.DogResponse, error)
	CreateDog(ctx context.Context, name string, age int) error
	DeleteDog(ctx context.Context, id int) error
}

type DogServiceImpl struct {
	logger *slog.Logger
	repo   DogRepo
}

func NewDogService(repo DogRepo, logger *slog.Logger) *DogServiceImpl {
	return &DogServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *DogServiceImpl) GetAllDogs(ctx context.Context) ([]types.DogResponse, error) {
	dogs, err := s.repo.GetAllDogs(ctx)
	if err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return nil, err
	}

	out := make([]types.DogResponse, 0, len(dogs))
	for _, d := range dogs {
		out = append(out, types.DogResponse{ID: d.ID, Name: d.Name, Age: d.Age})
	}
	return out, nil
}

func (s *DogServiceImpl) GetDog(ctx context.Context, id int) (*types.DogResponse, error) {
	d, err := s.repo.GetDogByID(ctx, id)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		}
		return nil, err
	}
	return &types.DogResponse{ID: d.ID, Name: d.Name, Age: d.Age}, nil
}

func (s *DogServiceImpl) CreateDog(ctx context.Context, name string, age int) error {
	if err := s.repo.CreateDog(ctx, name, age); err != nil {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		return err
	}
	return nil
}

func (s *DogServiceImpl) DeleteDog(ctx context.Context, id int) error {
	if err := s.repo.DeleteDog(ctx, id); err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		}
		return err
	}
	return nil
}
