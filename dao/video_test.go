package dao

import (
	"Tribune/models"
	"Tribune/pkg/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoDAO_ListByTargetKeyset(t *testing.T) {
	db := testutil.NewTestDB(t)
	d := NewVideoDAO(db)
	ctx := context.Background()
	now := testutil.Now()

	// 同一秒创建的两条视频按 ID 倒序
	a := testutil.CreateTargetVideo(t, db, 1, models.TargetProgram, 42, now.Add(-time.Hour))
	b := testutil.CreateTargetVideo(t, db, 1, models.TargetProgram, 42, now)
	c := testutil.CreateTargetVideo(t, db, 1, models.TargetProgram, 42, now)
	testutil.CreateTargetVideo(t, db, 1, models.TargetProposal, 42, now)

	page, err := d.ListByTarget(ctx, models.TargetProgram, 42, nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, c.ID, page[0].ID)
	assert.Equal(t, b.ID, page[1].ID)

	page, err = d.ListByTarget(ctx, models.TargetProgram, 42, &Keyset{CreatedAt: page[1].CreatedAt, ID: page[1].ID}, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, a.ID, page[0].ID)
}

func TestVoteDAO_ScoresOf(t *testing.T) {
	db := testutil.NewTestDB(t)
	d := NewVoteDAO(db)
	ctx := context.Background()
	v := testutil.CreateVideo(t, db, 1, testutil.Now())

	testutil.Vote(t, db, 2, models.TargetVideo, v.ID, 1)
	testutil.Vote(t, db, 3, models.TargetVideo, v.ID, 1)
	testutil.Vote(t, db, 4, models.TargetVideo, v.ID, -1)

	scores, err := d.ScoresOf(ctx, models.TargetVideo, []uint64{v.ID, 777})
	require.NoError(t, err)
	assert.EqualValues(t, 1, scores[v.ID])
	assert.NotContains(t, scores, uint64(777))

	has, err := d.HasVideoUpvote(ctx, 4)
	require.NoError(t, err)
	assert.False(t, has)
	has, err = d.HasVideoUpvote(ctx, 2)
	require.NoError(t, err)
	assert.True(t, has)

	// 只赞成过提案不算
	testutil.Vote(t, db, 5, models.TargetProposal, 9, 1)
	has, err = d.HasVideoUpvote(ctx, 5)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestVoteDAO_UpsertOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	d := NewVoteDAO(db)
	ctx := context.Background()

	require.NoError(t, d.Upsert(ctx, &models.Vote{ID: 1, UserID: 2, TargetType: models.TargetVideo, TargetID: 9, Value: 1}))
	require.NoError(t, d.Upsert(ctx, &models.Vote{ID: 2, UserID: 2, TargetType: models.TargetVideo, TargetID: 9, Value: -1}))

	scores, err := d.ScoresOf(ctx, models.TargetVideo, []uint64{9})
	require.NoError(t, err)
	assert.EqualValues(t, -1, scores[9])
}
