// Package kv stores JSON documents under string keys on top of a core.KVStore backend.
package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// Store serialises values to JSON and persists them through a backend.
type Store struct {
	backend core.KVStore
	logger  core.Logger
}

func New(backend core.KVStore, logger core.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

func (s *Store) Backend() core.KVStore { return s.backend }

// Save serialises value and stores it under key, replacing any prior value.
func (s *Store) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", key)
	}
	if err := s.backend.Put(ctx, key, data); err != nil {
		if errors.Cause(err) == core.ErrStorageQuotaExceeded {
			return core.ErrStorageQuotaExceeded
		}
		return errors.Wrapf(err, "saving %q", key)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(s.backend.Delete(ctx, key), "deleting %q", key)
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load returns the value stored under key, or def when the key is absent, holds `null`
// or cannot be decoded. Corrupt data is logged, never returned.
// Only backend failures are reported as errors.
func Load[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if errors.Cause(err) == core.ErrKeyNotFound {
			return def, nil
		}
		return def, errors.Wrapf(err, "loading %q", key)
	}

	var out *T
	if err := json.Unmarshal(data, &out); err != nil {
		if s.logger != nil {
			s.logger.Warn(fmt.Sprintf("kv: corrupt value under %q, using default", key), err)
		}
		return def, nil
	}
	if out == nil {
		return def, nil
	}
	return *out, nil
}
