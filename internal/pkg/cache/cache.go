package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Cache stores prompt answers for a fixed time-to-live.
type Cache interface {
	// Get reports ok=false when the key is missing or expired.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error

	// Purge drops expired entries and returns how many were removed.
	Purge(ctx context.Context) (int, error)
}

// Key derives the memo key for a system and user prompt pair.
func Key(system, user string) string {
	sum := sha256.Sum256([]byte(system + "\x00" + user))
	return hex.EncodeToString(sum[:])
}
