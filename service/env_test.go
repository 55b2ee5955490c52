package service

import (
	"Tribune/config"
	"Tribune/dao"
	"Tribune/dao/cache"
	"Tribune/models"
	"Tribune/pkg/testutil"
	"Tribune/types"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	conf      *config.Config
	views     *dao.VideoViewDAO
	index     *BookmarkIndex
	assembler *VideoAssembler
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithRedis(t, nil)
}

func newTestEnvWithRedis(t *testing.T, rds *redis.Client) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	conf, err := config.Parse(nil)
	require.NoError(t, err)
	conf.Feed.SourceTimeout = 2 * time.Second

	index := &BookmarkIndex{
		DAO:   dao.NewVideoBookmarkDAO(db),
		Cache: cache.NewBookmarkStorage(rds, conf),
	}
	return &testEnv{
		db:    db,
		conf:  conf,
		views: dao.NewVideoViewDAO(db),
		index: index,
		assembler: &VideoAssembler{
			VideoDAO: dao.NewVideoDAO(db),
			VoteDAO:  dao.NewVoteDAO(db),
			Index:    index,
		},
	}
}

func (e *testEnv) realSources() []WeightedSource {
	candidates := dao.NewCandidateDAO(e.db)
	return NewFeedSources(
		NewAffinitySource(dao.NewVoteDAO(e.db), candidates, e.conf),
		NewPopularitySource(candidates, e.conf),
		NewEngagementSource(candidates, e.conf),
		e.conf,
	)
}

func (e *testEnv) feed(sources []WeightedSource) *FeedService {
	return NewFeedService(e.views, sources, e.assembler, dao.NewFeedLogDAO(e.db), NewCursorCodec(e.conf), e.conf)
}

func (e *testEnv) videos(t *testing.T, n int) []*models.Video {
	t.Helper()
	now := testutil.Now()
	out := make([]*models.Video, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, testutil.CreateVideo(t, e.db, 9000, now.Add(-time.Duration(i)*time.Minute)))
	}
	return out
}

// staticSource 返回固定结果的召回，可模拟失败和超时
type staticSource struct {
	name  types.FeedSource
	ids   []uint64
	err   error
	block bool
}

func (s *staticSource) Name() types.FeedSource { return s.name }

func (s *staticSource) Candidates(ctx context.Context, q CandidateQuery) ([]types.FeedCandidate, error) {
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	items := make([]types.FeedCandidate, 0, len(s.ids))
	for _, id := range s.ids {
		if _, ok := q.Excluded[id]; ok {
			continue
		}
		items = append(items, types.FeedCandidate{VideoID: id, Source: s.name})
	}
	return items, nil
}

var errSourceDown = errors.New("source down")

// brokenLedger 模拟数据库不可用
type brokenLedger struct{}

func (brokenLedger) RecordView(context.Context, uint64, uint64) error { return errors.New("db down") }
func (brokenLedger) ExcludedVideoIDs(context.Context, uint64) (map[uint64]struct{}, error) {
	return nil, errors.New("db down")
}
func (brokenLedger) ExcludedVideoIDsAsOf(context.Context, uint64, time.Time) (map[uint64]struct{}, error) {
	return nil, errors.New("db down")
}
func (brokenLedger) ResetForUser(context.Context, uint64) error { return errors.New("db down") }

func videoIDsOf(items []*types.Video) []uint64 {
	out := make([]uint64, 0, len(items))
	for _, v := range items {
		out = append(out, v.ID)
	}
	return out
}
