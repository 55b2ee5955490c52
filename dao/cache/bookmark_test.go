package cache

import (
	"Tribune/config"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) (*BookmarkStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	return NewBookmarkStorage(rds, &config.Config{Feed: &config.Feed{BookmarkCacheTTL: time.Minute}}), mr
}

func TestBookmarkStorage_FillAndMembers(t *testing.T) {
	s, mr := newStorage(t)
	ctx := context.Background()

	_, ok, err := s.Members(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Fill(ctx, 1, []uint64{10, 20}))
	set, ok, err := s.Members(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, set, 2)
	assert.Contains(t, set, uint64(10))
	assert.Equal(t, time.Minute, mr.TTL("feed:bookmark:1"))

	// 空集合也算命中
	require.NoError(t, s.Fill(ctx, 2, nil))
	set, ok, err = s.Members(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, set)

	require.NoError(t, s.Invalidate(ctx, 1))
	_, ok, err = s.Members(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok, err = s.Members(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookmarkStorage_Disabled(t *testing.T) {
	s := NewBookmarkStorage(nil, &config.Config{Feed: &config.Feed{}})
	ctx := context.Background()

	assert.False(t, s.Enabled())
	_, ok, err := s.Members(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, s.Fill(ctx, 1, []uint64{1}))
	assert.NoError(t, s.Invalidate(ctx, 1))
}
