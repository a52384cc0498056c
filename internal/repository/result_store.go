package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
)

// ErrResultNotFound is returned when no readable result exists for a test.
// Absent and malformed records are deliberately indistinguishable: the
// results view shows "not found" for both instead of failing.
var ErrResultNotFound = errors.New("result not found")

// ResultStore is the persistence boundary for submitted results. A result is
// written once at submission, keyed by its test ID, and never mutated.
type ResultStore interface {
	Save(ctx context.Context, r *model.Result) error
	Get(ctx context.Context, testID uuid.UUID) (*model.Result, error)
}
