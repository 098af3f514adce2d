// Package metadata stores small key/value blobs in the local SQLite
// database. The session store keeps the user record, the bearer token and
// the per-account onboarding markers here.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns the present keys only.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete ignores keys that are not present.
	Delete(ctx context.Context, keys ...string) error
}
