package repository

import (
	"context"
	"fmt"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/pkg/kv"
)

// identityKey is the fixed storage key of the singleton identity record.
const identityKey = "blog:identity"

type kvRepository struct {
	store kv.Store
}

// NewKVRepository creates the identity repository on top of the KV store.
func NewKVRepository(store kv.Store) blog.Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) Load(ctx context.Context) (*blog.StoredIdentity, bool, error) {
	var record blog.StoredIdentity
	found, err := r.store.Get(ctx, identityKey, &record)
	if err != nil {
		return nil, false, fmt.Errorf("load identity: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &record, true, nil
}

func (r *kvRepository) Save(ctx context.Context, record *blog.StoredIdentity) error {
	if err := r.store.Set(ctx, identityKey, record, 0); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}
