package service

import (
	"Tribune/dao"
	"Tribune/pkg/testutil"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookmarkService(env *testEnv) *BookmarkService {
	return &BookmarkService{
		DAO:       dao.NewVideoBookmarkDAO(env.db),
		VideoDAO:  dao.NewVideoDAO(env.db),
		Index:     env.index,
		Assembler: env.assembler,
		Codec:     NewCursorCodec(env.conf),
		Config:    env.conf,
	}
}

func TestBookmarkService_Toggle(t *testing.T) {
	env := newTestEnv(t)
	svc := newBookmarkService(env)
	videos := env.videos(t, 1)
	ctx := context.Background()

	on, err := svc.Toggle(ctx, 7, videos[0].ID)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := svc.Toggle(ctx, 7, videos[0].ID)
	require.NoError(t, err)
	assert.False(t, off)

	_, err = svc.Toggle(ctx, 7, 987654321)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestBookmarkService_ListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := newBookmarkService(env)
	videos := env.videos(t, 3)
	now := testutil.Now()
	// 收藏顺序与视频创建顺序相反
	testutil.Bookmark(t, env.db, 7, videos[0].ID, now.Add(-3*time.Minute))
	testutil.Bookmark(t, env.db, 7, videos[1].ID, now.Add(-2*time.Minute))
	testutil.Bookmark(t, env.db, 7, videos[2].ID, now.Add(-1*time.Minute))
	testutil.Bookmark(t, env.db, 8, videos[0].ID, now)

	first, err := svc.List(context.Background(), 7, "", 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{videos[2].ID, videos[1].ID}, videoIDsOf(first.Items))
	for _, item := range first.Items {
		assert.True(t, item.Bookmarked)
	}
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.List(context.Background(), 7, first.NextCursor, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{videos[0].ID}, videoIDsOf(second.Items))
	assert.Empty(t, second.NextCursor)
}

func TestBookmarkService_CacheInvalidatedOnToggle(t *testing.T) {
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	env := newTestEnvWithRedis(t, rds)
	svc := newBookmarkService(env)
	videos := env.videos(t, 2)
	ctx := context.Background()

	// 先读一次让缓存写入空集合
	state, err := env.index.Check(ctx, 7, []uint64{videos[0].ID})
	require.NoError(t, err)
	assert.False(t, state[videos[0].ID])
	assert.True(t, mr.Exists("feed:bookmark:7"))

	_, err = svc.Toggle(ctx, 7, videos[0].ID)
	require.NoError(t, err)
	assert.False(t, mr.Exists("feed:bookmark:7"))

	state, err = env.index.Check(ctx, 7, []uint64{videos[0].ID, videos[1].ID})
	require.NoError(t, err)
	assert.True(t, state[videos[0].ID])
	assert.False(t, state[videos[1].ID])
}

func TestBookmarkIndex_FallsBackWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	env := newTestEnvWithRedis(t, rds)
	videos := env.videos(t, 1)
	testutil.Bookmark(t, env.db, 7, videos[0].ID, testutil.Now())
	mr.Close()

	state, err := env.index.Check(context.Background(), 7, []uint64{videos[0].ID})
	require.NoError(t, err)
	assert.True(t, state[videos[0].ID])
}
