// Package memkv is an in-memory core.KVStore, used in tests and with `storage.driver=memory`.
package memkv

import (
	"context"
	"sort"
	"sync"

	"github.com/trezcool/darasa/core"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ core.KVStore = (*Store)(nil)

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

// ForEach visits keys in lexical order.
func (s *Store) ForEach(_ context.Context, fn func(key string, value []byte) error) error {
	s.mu.RLock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)

	for _, k := range keys {
		s.mu.RLock()
		v, ok := s.data[k]
		s.mu.RUnlock()
		if !ok {
			continue
		}
		if err := fn(k, append([]byte(nil), v...)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error { return nil }
