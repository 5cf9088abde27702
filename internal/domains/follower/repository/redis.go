package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"fedblog-backend/internal/domains/follower"
	"fedblog-backend/pkg/kv"
)

// followersKey holds the follower set as a hash: actor URI -> record JSON.
// A hash rather than a plain set so each member carries its inbox and
// follow metadata without a second lookup.
const followersKey = "followers"

type kvRepository struct {
	store kv.Store
}

// NewKVRepository creates the follower registry on top of the KV store.
func NewKVRepository(store kv.Store) follower.Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) Add(ctx context.Context, f *follower.Follower) error {
	if err := r.store.HashSet(ctx, followersKey, f.ActorURI, f); err != nil {
		return fmt.Errorf("add follower: %w", err)
	}
	return nil
}

func (r *kvRepository) Remove(ctx context.Context, actorURI string) error {
	if err := r.store.HashDelete(ctx, followersKey, actorURI); err != nil {
		return fmt.Errorf("remove follower: %w", err)
	}
	return nil
}

func (r *kvRepository) Get(ctx context.Context, actorURI string) (*follower.Follower, bool, error) {
	var f follower.Follower
	found, err := r.store.HashGet(ctx, followersKey, actorURI, &f)
	if err != nil {
		return nil, false, fmt.Errorf("get follower: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &f, true, nil
}

func (r *kvRepository) List(ctx context.Context) ([]*follower.Follower, error) {
	raw, err := r.store.HashGetAll(ctx, followersKey)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}

	followers := make([]*follower.Follower, 0, len(raw))
	for uri, entry := range raw {
		var f follower.Follower
		if err := json.Unmarshal([]byte(entry), &f); err != nil {
			return nil, fmt.Errorf("decode follower %s: %w", uri, err)
		}
		followers = append(followers, &f)
	}
	return followers, nil
}

func (r *kvRepository) Count(ctx context.Context) (int64, error) {
	return r.store.HashLen(ctx, followersKey)
}
