package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fedblog-backend/internal/domains/follower"
	"fedblog-backend/pkg/kv"
)

func TestAddGetRoundTrip(t *testing.T) {
	repo := NewKVRepository(kv.NewMemoryStore())
	ctx := context.Background()

	followedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(ctx, &follower.Follower{
		ActorURI:   "https://remote.example/users/bob",
		InboxURI:   "https://remote.example/users/bob/inbox",
		ActivityID: "https://remote.example/activities/f1",
		FollowedAt: followedAt,
	}))

	got, found, err := repo.Get(ctx, "https://remote.example/users/bob")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "https://remote.example/users/bob/inbox", got.InboxURI)
	assert.Equal(t, "https://remote.example/activities/f1", got.ActivityID)
	assert.True(t, got.FollowedAt.Equal(followedAt))
}

func TestAddSameActorTwiceKeepsOneEntry(t *testing.T) {
	repo := NewKVRepository(kv.NewMemoryStore())
	ctx := context.Background()

	first := &follower.Follower{
		ActorURI: "https://remote.example/users/bob",
		InboxURI: "https://remote.example/users/bob/inbox",
	}
	require.NoError(t, repo.Add(ctx, first))

	// A repeated Follow from the same actor overwrites in place.
	second := &follower.Follower{
		ActorURI:   "https://remote.example/users/bob",
		InboxURI:   "https://remote.example/users/bob/inbox",
		ActivityID: "https://remote.example/activities/f2",
	}
	require.NoError(t, repo.Add(ctx, second))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	got, found, err := repo.Get(ctx, "https://remote.example/users/bob")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "https://remote.example/activities/f2", got.ActivityID)
}

func TestRemove(t *testing.T) {
	repo := NewKVRepository(kv.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &follower.Follower{ActorURI: "https://a.example/u/1"}))
	require.NoError(t, repo.Remove(ctx, "https://a.example/u/1"))

	_, found, err := repo.Get(ctx, "https://a.example/u/1")
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an unknown actor is a no-op.
	assert.NoError(t, repo.Remove(ctx, "https://a.example/u/1"))
}

func TestListAndCount(t *testing.T) {
	repo := NewKVRepository(kv.NewMemoryStore())
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	uris := []string{"https://a.example/u/1", "https://b.example/u/2", "https://c.example/u/3"}
	for _, uri := range uris {
		require.NoError(t, repo.Add(ctx, &follower.Follower{ActorURI: uri, InboxURI: uri + "/inbox"}))
	}

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	seen := make(map[string]bool)
	for _, f := range list {
		seen[f.ActorURI] = true
		assert.Equal(t, f.ActorURI+"/inbox", f.InboxURI)
	}
	for _, uri := range uris {
		assert.True(t, seen[uri])
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
