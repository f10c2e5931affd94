package boltkv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/storage/kv/kvtest"
)

func TestStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	kvtest.Run(t, s)
}

func TestStore_durable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "currentUser", []byte(`{"username":"teacher","role":"teacher"}`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	got, err := s.Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"teacher","role":"teacher"}`, string(got))
}
