package reveal

import (
	"context"
	"fmt"
	"time"
)

// Store keeps the revealed sections of every live mount.
type Store interface {
	// Revealed returns the sections already revealed for mount.
	Revealed(ctx context.Context, mount string) (map[Section]bool, error)
	// MarkRevealed records section as revealed for mount and reports whether it was new.
	// It counts as activity on mount.
	MarkRevealed(ctx context.Context, mount string, section Section) (bool, error)
	// Touch records activity on mount so Prune keeps it.
	Touch(ctx context.Context, mount string) error
	// Prune forgets mounts with no activity since cutoff and returns how many were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
	// Close releases the backend.
	Close() error
}

// StoreConfig selects and configures a Store backend.
type StoreConfig struct {
	// RedisURL selects the Redis backend when set.
	RedisURL string
	// TTL is how long an idle mount is remembered.
	TTL time.Duration
}

// DefaultTTL is how long an idle mount keeps its latches.
const DefaultTTL = 2 * time.Hour

// OpenStore returns the Redis store when cfg.RedisURL is set and the in-memory SQLite
// store otherwise.
func OpenStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.RedisURL != "" {
		s, err := NewRedisStore(ctx, cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("open redis reveal store: %w", err)
		}
		return s, nil
	}
	s, err := NewSQLiteStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open sqlite reveal store: %w", err)
	}
	return s, nil
}
