// Package metadata is a small key/value store in the local database. The
// client keeps cache bookkeeping here, such as when each listing was last
// fetched.
package metadata

import (
	"context"
	"time"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// SyncTracker records when something was last refreshed from the backend.
type SyncTracker interface {
	SyncedAt(ctx context.Context, name string) (time.Time, bool, error)
	MarkSynced(ctx context.Context, name string, at time.Time) error
	ClearSynced(ctx context.Context, name string) error
}
