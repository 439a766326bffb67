package repository

import (
	"context"
	"errors"

	"github.com/center-believer/backend/internal/scientist"
)

var ErrNotFound = errors.New("scientist not found")

// Repository is the persistence contract for the scientists collection.
type Repository interface {
	List(ctx context.Context) ([]*scientist.Scientist, error)
	Get(ctx context.Context, id string) (*scientist.Scientist, error)
	Create(ctx context.Context, s *scientist.Scientist) error
	Update(ctx context.Context, id string, fields scientist.UpdateFields) (*scientist.Scientist, error)
	Delete(ctx context.Context, id string) error
}
