package service

import (
	"Tribune/config"
	"Tribune/dao"
	"Tribune/pkg/log"
	"Tribune/types"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// CandidateSource 一路召回。输入用户与已看集合，输出按分数排好序的候选
type CandidateSource interface {
	Name() types.FeedSource
	Candidates(ctx context.Context, q CandidateQuery) ([]types.FeedCandidate, error)
}

// CandidateQuery 一次召回的输入。
// AsOf 是本轮翻页的起始时刻，召回只看这之前的数据；Excluded 是 AsOf 时的已看集合
type CandidateQuery struct {
	UserID   uint64
	AsOf     time.Time
	Excluded map[uint64]struct{}
}

func (q CandidateQuery) filter(limit int, window time.Duration) dao.CandidateFilter {
	asOf := q.AsOf.UTC()
	return dao.CandidateFilter{UserID: q.UserID, AsOf: asOf, Since: asOf.Add(-window), Limit: limit}
}

// AffinitySource 协同过滤召回
type AffinitySource struct {
	Votes *dao.VoteDAO
	DAO   *dao.CandidateDAO
	Cap   int
}

func NewAffinitySource(votes *dao.VoteDAO, candidates *dao.CandidateDAO, conf *config.Config) *AffinitySource {
	return &AffinitySource{Votes: votes, DAO: candidates, Cap: conf.Feed.AffinityCap}
}

func (s *AffinitySource) Name() types.FeedSource { return types.SourceAffinity }

func (s *AffinitySource) Candidates(ctx context.Context, q CandidateQuery) ([]types.FeedCandidate, error) {
	// 冷启动：没有给视频投过赞成票的用户没有协同信号
	has, err := s.Votes.HasVideoUpvote(ctx, q.UserID)
	if err != nil {
		return nil, err
	}
	if !has {
		return []types.FeedCandidate{}, nil
	}

	rows, err := s.DAO.Affinity(ctx, q.filter(s.Cap, 0))
	if err != nil {
		return nil, err
	}
	return toCandidates(s.Name(), rows, q.Excluded), nil
}

// PopularitySource 近期净票数召回
type PopularitySource struct {
	DAO    *dao.CandidateDAO
	Cap    int
	Window time.Duration
}

func NewPopularitySource(candidates *dao.CandidateDAO, conf *config.Config) *PopularitySource {
	return &PopularitySource{DAO: candidates, Cap: conf.Feed.PopularityCap, Window: conf.Feed.RecencyWindow}
}

func (s *PopularitySource) Name() types.FeedSource { return types.SourcePopularity }

func (s *PopularitySource) Candidates(ctx context.Context, q CandidateQuery) ([]types.FeedCandidate, error) {
	rows, err := s.DAO.Popular(ctx, q.filter(s.Cap, s.Window))
	if err != nil {
		return nil, err
	}
	return toCandidates(s.Name(), rows, q.Excluded), nil
}

// EngagementSource 近期互动召回
type EngagementSource struct {
	DAO    *dao.CandidateDAO
	Cap    int
	Window time.Duration
}

func NewEngagementSource(candidates *dao.CandidateDAO, conf *config.Config) *EngagementSource {
	return &EngagementSource{DAO: candidates, Cap: conf.Feed.EngagementCap, Window: conf.Feed.RecencyWindow}
}

func (s *EngagementSource) Name() types.FeedSource { return types.SourceEngagement }

func (s *EngagementSource) Candidates(ctx context.Context, q CandidateQuery) ([]types.FeedCandidate, error) {
	rows, err := s.DAO.Engagement(ctx, q.filter(s.Cap, s.Window))
	if err != nil {
		return nil, err
	}
	return toCandidates(s.Name(), rows, q.Excluded), nil
}

// toCandidates SQL 已按快照排除过已看视频，这里再按传入的集合过一遍
func toCandidates(source types.FeedSource, rows []dao.CandidateRow, excluded map[uint64]struct{}) []types.FeedCandidate {
	items := make([]types.FeedCandidate, 0, len(rows))
	for _, r := range rows {
		if _, ok := excluded[r.VideoID]; ok {
			continue
		}
		items = append(items, types.FeedCandidate{VideoID: r.VideoID, Source: source, Score: r.Score})
	}
	return items
}

// guardedSource 给召回加熔断和超时。超时以 ctx 为准，即使下游不响应 ctx 也会按时返回
type guardedSource struct {
	source  CandidateSource
	breaker *gobreaker.CircuitBreaker[[]types.FeedCandidate]
}

func newGuardedSource(source CandidateSource, conf *config.Feed) *guardedSource {
	settings := gobreaker.Settings{
		Name:        string(source.Name()),
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     conf.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(conf.BreakerFailures)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.L.Warn("feed source breaker state changed",
				zap.String("source", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &guardedSource{
		source:  source,
		breaker: gobreaker.NewCircuitBreaker[[]types.FeedCandidate](settings),
	}
}

func (g *guardedSource) Name() types.FeedSource { return g.source.Name() }

func (g *guardedSource) Candidates(ctx context.Context, q CandidateQuery) ([]types.FeedCandidate, error) {
	return g.breaker.Execute(func() ([]types.FeedCandidate, error) {
		type result struct {
			items []types.FeedCandidate
			err   error
		}
		ch := make(chan result, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					ch <- result{err: fmt.Errorf("source %s panic: %v", g.source.Name(), r)}
				}
			}()
			items, err := g.source.Candidates(ctx, q)
			ch <- result{items: items, err: err}
		}()

		select {
		case r := <-ch:
			return r.items, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}
