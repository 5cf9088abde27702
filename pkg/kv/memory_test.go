package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, store.Set(ctx, "k", record{Name: "a", Count: 2}, 0))

	var got record
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record{Name: "a", Count: 2}, got)

	found, err = store.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "first", 0))
	require.NoError(t, store.Set(ctx, "k", "second", 0))

	var got string
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second", got)
}

func TestTTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	require.NoError(t, store.Delete(ctx, "k"))

	exists, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHashOperations(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.HashSet(ctx, "h", "f1", "v1"))
	require.NoError(t, store.HashSet(ctx, "h", "f2", "v2"))

	n, err := store.HashLen(ctx, "h")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var got string
	found, err := store.HashGet(ctx, "h", "f1", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v1", got)

	all, err := store.HashGetAll(ctx, "h")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, store.HashDelete(ctx, "h", "f1"))
	found, err = store.HashGet(ctx, "h", "f1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHashIncrement(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	n, err := store.HashIncrement(ctx, "h", "f")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = store.HashIncrement(ctx, "h", "f")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	all, err := store.HashGetAll(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, "2", all["f"])
}
