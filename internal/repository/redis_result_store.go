package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/model"
)

// RedisResultStore keeps serialized results in Redis under the
// "test_result_<testID>" key contract.
type RedisResultStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisResultStore creates a new RedisResultStore. ttl of zero keeps
// results forever.
func NewRedisResultStore(rdb *redis.Client, ttl time.Duration) *RedisResultStore {
	return &RedisResultStore{rdb: rdb, ttl: ttl}
}

// Save serializes the result and writes it under its test's key.
func (s *RedisResultStore) Save(ctx context.Context, r *model.Result) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	key := config.StoreKey.ResultKey(r.TestID.String())
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	return nil
}

// Get reads a result back. Missing keys and records that no longer decode
// both report ErrResultNotFound.
func (s *RedisResultStore) Get(ctx context.Context, testID uuid.UUID) (*model.Result, error) {
	key := config.StoreKey.ResultKey(testID.String())
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("get result: %w", err)
	}

	var r model.Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, ErrResultNotFound
	}
	return &r, nil
}
