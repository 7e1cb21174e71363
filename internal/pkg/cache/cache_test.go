package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k := Key("system", "user")
	assert.Len(t, k, 64)
	assert.Equal(t, k, Key("system", "user"))

	// The separator keeps prompt boundaries distinct.
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	m := NewMemory(30 * time.Minute)
	m.now = func() time.Time { return now }

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v"))

	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	now = now.Add(29 * time.Minute)
	_, ok, _ = m.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok, "entry expires at exactly the ttl")
	assert.Equal(t, 1, m.Len())

	removed, err := m.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryPurgeKeepsLiveEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "old", "1"))
	now = now.Add(45 * time.Second)
	require.NoError(t, m.Set(ctx, "new", "2"))
	now = now.Add(30 * time.Second)

	removed, err := m.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, ok, _ := m.Get(ctx, "new")
	assert.True(t, ok)
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	r, err := NewRedis(config.RedisConfig{Addr: addr}, time.Minute)
	require.NoError(t, err)
	defer r.Close()

	key := Key("test", time.Now().String())
	_, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, key, "answer"))
	v, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "answer", v)
}
