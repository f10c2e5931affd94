package kv

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// quotaStore caps the total number of key+value bytes held by the backend.
type quotaStore struct {
	core.KVStore

	mu     sync.Mutex
	limit  int64
	used   int64
	sizes  map[string]int64
	loaded bool
}

// WithQuota wraps backend so that a Put growing the stored bytes past limit fails with
// core.ErrStorageQuotaExceeded and leaves the previous value in place. limit <= 0 disables it.
func WithQuota(backend core.KVStore, limit int64) core.KVStore {
	if limit <= 0 {
		return backend
	}
	return &quotaStore{KVStore: backend, limit: limit, sizes: make(map[string]int64)}
}

func entrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}

func (q *quotaStore) load(ctx context.Context) error {
	if q.loaded {
		return nil
	}
	err := q.KVStore.ForEach(ctx, func(key string, value []byte) error {
		size := entrySize(key, value)
		q.sizes[key] = size
		q.used += size
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "measuring storage usage")
	}
	q.loaded = true
	return nil
}

func (q *quotaStore) Put(ctx context.Context, key string, value []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.load(ctx); err != nil {
		return err
	}
	size := entrySize(key, value)
	if q.used-q.sizes[key]+size > q.limit {
		return core.ErrStorageQuotaExceeded
	}
	if err := q.KVStore.Put(ctx, key, value); err != nil {
		return err
	}
	q.used += size - q.sizes[key]
	q.sizes[key] = size
	return nil
}

func (q *quotaStore) Delete(ctx context.Context, key string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.KVStore.Delete(ctx, key); err != nil {
		return err
	}
	if q.loaded {
		q.used -= q.sizes[key]
		delete(q.sizes, key)
	}
	return nil
}
