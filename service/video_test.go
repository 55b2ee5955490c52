package service

import (
	"Tribune/dao"
	"Tribune/models"
	"Tribune/pkg/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideoService(env *testEnv) *VideoService {
	return &VideoService{
		VideoDAO:  dao.NewVideoDAO(env.db),
		Ledger:    env.views,
		Assembler: env.assembler,
		Codec:     NewCursorCodec(env.conf),
		Config:    env.conf,
	}
}

func TestVideoService_MarkViewed(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env)
	videos := env.videos(t, 1)
	ctx := context.Background()

	require.NoError(t, svc.MarkViewed(ctx, 7, videos[0].ID))
	require.NoError(t, svc.MarkViewed(ctx, 7, videos[0].ID))
	assert.EqualValues(t, 1, testutil.CountViews(t, env.db, 7))

	err := svc.MarkViewed(ctx, 7, 123456789)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	assert.EqualValues(t, 1, testutil.CountViews(t, env.db, 7))
}

func TestVideoService_MarkViewedStoreDown(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env)
	svc.Ledger = brokenLedger{}
	videos := env.videos(t, 1)

	err := svc.MarkViewed(context.Background(), 7, videos[0].ID)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestVideoService_ListContentVideos(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env)
	ctx := context.Background()
	now := testutil.Now()

	var want []uint64
	for i := 0; i < 5; i++ {
		v := testutil.CreateTargetVideo(t, env.db, 9000, models.TargetProposal, 42, now.Add(-time.Duration(i)*time.Minute))
		want = append(want, v.ID)
	}
	// 其他对象下的视频不应出现
	testutil.CreateTargetVideo(t, env.db, 9000, models.TargetProposal, 43, now)
	testutil.CreateTargetVideo(t, env.db, 9000, models.TargetProgram, 42, now)

	// 已看过的视频不影响单内容列表
	require.NoError(t, env.views.RecordView(ctx, 7, want[0]))

	first, err := svc.ListContentVideos(ctx, 7, models.TargetProposal, 42, "", 2)
	require.NoError(t, err)
	assert.Equal(t, want[:2], videoIDsOf(first.Items))
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.ListContentVideos(ctx, 7, models.TargetProposal, 42, first.NextCursor, 2)
	require.NoError(t, err)
	assert.Equal(t, want[2:4], videoIDsOf(second.Items))

	third, err := svc.ListContentVideos(ctx, 7, models.TargetProposal, 42, second.NextCursor, 2)
	require.NoError(t, err)
	assert.Equal(t, want[4:], videoIDsOf(third.Items))
	assert.Empty(t, third.NextCursor)
}

func TestVideoService_ListContentVideosSameTimestamp(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env)
	ctx := context.Background()
	now := testutil.Now()

	seen := make(map[uint64]struct{})
	for i := 0; i < 4; i++ {
		testutil.CreateTargetVideo(t, env.db, 9000, models.TargetProgram, 1, now)
	}

	token := ""
	for {
		page, err := svc.ListContentVideos(ctx, 7, models.TargetProgram, 1, token, 3)
		require.NoError(t, err)
		for _, id := range videoIDsOf(page.Items) {
			_, dup := seen[id]
			require.False(t, dup)
			seen[id] = struct{}{}
		}
		if page.NextCursor == "" {
			break
		}
		token = page.NextCursor
	}
	assert.Len(t, seen, 4)
}

func TestVideoService_ListContentVideosInvalidCursor(t *testing.T) {
	env := newTestEnv(t)
	svc := newVideoService(env)
	now := testutil.Now()
	testutil.CreateTargetVideo(t, env.db, 9000, models.TargetProposal, 42, now)

	page, err := svc.ListContentVideos(context.Background(), 7, models.TargetProposal, 42, "%%%", 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	empty, err := svc.ListContentVideos(context.Background(), 7, models.TargetProposal, 404, "", 10)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.Empty(t, empty.NextCursor)
}
