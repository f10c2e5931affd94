// Package kvtest checks that a core.KVStore backend honours the store contract.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
)

// Run exercises backend; it must start empty.
func Run(t *testing.T, backend core.KVStore) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := backend.Get(ctx, "missing")
		assert.Equal(t, core.ErrKeyNotFound, err)
	})

	t.Run("put replaces", func(t *testing.T) {
		require.NoError(t, backend.Put(ctx, "users", []byte(`[1]`)))
		require.NoError(t, backend.Put(ctx, "users", []byte(`[1,2]`)))
		got, err := backend.Get(ctx, "users")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[1,2]`), got)
	})

	t.Run("for each", func(t *testing.T) {
		require.NoError(t, backend.Put(ctx, "grades", []byte(`[]`)))
		seen := make(map[string]string)
		err := backend.ForEach(ctx, func(key string, value []byte) error {
			seen[key] = string(value)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"users": `[1,2]`, "grades": `[]`}, seen)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, "users"))
		_, err := backend.Get(ctx, "users")
		assert.Equal(t, core.ErrKeyNotFound, err)
		assert.NoError(t, backend.Delete(ctx, "users"), "deleting a missing key is not an error")
	})
}
