package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/model"
)

// MemoryTestRepository is the process-wide mock test store: a mutex-guarded
// slice initialized once at startup. Newly added tests go to the front so
// List stays most-recent-first without sorting.
type MemoryTestRepository struct {
	mu    sync.RWMutex
	tests []model.Test
}

// NewMemoryTestRepository creates a memory store pre-populated with the
// given tests, newest first.
func NewMemoryTestRepository(seed []model.Test) *MemoryTestRepository {
	tests := make([]model.Test, len(seed))
	copy(tests, seed)
	return &MemoryTestRepository{tests: tests}
}

// List returns all tests, most recently added first.
func (r *MemoryTestRepository) List(ctx context.Context) ([]model.Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Test, len(r.tests))
	copy(out, r.tests)
	return out, nil
}

// GetByID returns the test with the given ID or ErrTestNotFound.
func (r *MemoryTestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.tests {
		if r.tests[i].ID == id {
			t := r.tests[i]
			return &t, nil
		}
	}
	return nil, ErrTestNotFound
}

// Add prepends a new test. Caller-supplied IDs and schedules are stored as
// given; the repository does not validate them.
func (r *MemoryTestRepository) Add(ctx context.Context, t *model.Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tests = append([]model.Test{*t}, r.tests...)
	return nil
}
