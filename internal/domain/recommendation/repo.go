package recommendation

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no recommendation matches.
var ErrNotFound = errors.New("recommendation not found")

type Repository interface {
	Create(ctx context.Context, r *Recommendation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	GetByCase(ctx context.Context, caseID uuid.UUID) (*Recommendation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
