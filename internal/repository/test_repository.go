package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
)

// ErrTestNotFound is returned when a test ID resolves to nothing.
var ErrTestNotFound = errors.New("test not found")

// TestRepository supplies immutable test records and accepts newly created
// ones. List returns the most recently added test first; Add prepends.
// Implementations: the seeded in-memory store (default) and PostgreSQL.
type TestRepository interface {
	List(ctx context.Context) ([]model.Test, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error)
	Add(ctx context.Context, t *model.Test) error
}
