package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/model"
)

// MemoryResultStore is an in-process ResultStore used by tests. It stores
// serialized bytes rather than structs so reads exercise the same
// round-trip as the Redis store.
type MemoryResultStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryResultStore creates an empty MemoryResultStore.
func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{records: make(map[string][]byte)}
}

// Save serializes and stores the result under its test's key.
func (s *MemoryResultStore) Save(ctx context.Context, r *model.Result) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[config.StoreKey.ResultKey(r.TestID.String())] = raw
	return nil
}

// Get deserializes a stored result, reporting ErrResultNotFound for absent
// or undecodable records.
func (s *MemoryResultStore) Get(ctx context.Context, testID uuid.UUID) (*model.Result, error) {
	s.mu.RLock()
	raw, ok := s.records[config.StoreKey.ResultKey(testID.String())]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrResultNotFound
	}

	var r model.Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, ErrResultNotFound
	}
	return &r, nil
}

// Corrupt overwrites a stored record with undecodable bytes. Test helper for
// the malformed-record path.
func (s *MemoryResultStore) Corrupt(testID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[config.StoreKey.ResultKey(testID.String())] = []byte("{not json")
}
