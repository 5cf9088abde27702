package blog

import "context"

// Repository persists the single identity record.
// The record lives under one fixed key, so a single-key atomic write is the
// only consistency guarantee needed: concurrent rewrites race by
// last-write-wins, acceptable with exactly one authorized operator.
type Repository interface {
	// Load returns the stored record and whether it exists.
	Load(ctx context.Context) (*StoredIdentity, bool, error)

	// Save overwrites the stored record.
	Save(ctx context.Context, record *StoredIdentity) error
}
