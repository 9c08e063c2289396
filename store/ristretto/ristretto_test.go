package ristretto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/mapkv/provider/mapstore"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestAdapterOverRistretto(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	a, err := mapstore.New(s, mapstore.Options{Namespace: mapstore.Fixed("user")})
	require.NoError(t, err)

	type user struct{ ID string }
	u := &user{ID: "1"}
	ok, err := a.Set(ctx, "1", u, 0)
	require.NoError(t, err)
	require.True(t, ok)

	rec, found, err := a.Get(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Same(t, u, rec.Value)

	has, _ := s.Has("user::1")
	assert.True(t, has)

	removed, err := a.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, removed)
	_, found, _ = a.Get(ctx, "1")
	assert.False(t, found)
}

func TestForeignValueDropped(t *testing.T) {
	s := newStore(t)
	s.c.Set("k", "not-a-record", 1)
	s.c.Wait()

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}
