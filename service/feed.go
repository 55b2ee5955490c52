package service

import (
	"Tribune/config"
	"Tribune/dao"
	"Tribune/models"
	"Tribune/pkg/cursor"
	"Tribune/pkg/log"
	"Tribune/pkg/metrics"
	"Tribune/pkg/snowflake"
	"Tribune/types"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var _ IFeedService = (*FeedService)(nil)

type IFeedService interface {
	ListFeed(ctx context.Context, userID uint64, token string, limit int) (*types.VideoPage, error)
}

// WeightedSource 召回及其混排权重
type WeightedSource struct {
	Source CandidateSource
	Weight int
}

// FeedService 个性化推荐流。
// 一次请求：读取已看集合 → 三路召回并发 → 混排 → 按游标截取；
// 首屏为空时清空已看记录并重试一次，翻页中为空直接返回空页
type FeedService struct {
	ledger    ViewLedger
	sources   []WeightedSource
	assembler *VideoAssembler
	logs      *dao.FeedLogDAO
	codec     *cursor.Codec
	conf      *config.Feed
	now       func() time.Time

	resets singleflight.Group
}

func NewFeedService(
	ledger ViewLedger,
	sources []WeightedSource,
	assembler *VideoAssembler,
	logs *dao.FeedLogDAO,
	codec *cursor.Codec,
	conf *config.Config,
) *FeedService {
	guarded := make([]WeightedSource, 0, len(sources))
	for _, ws := range sources {
		guarded = append(guarded, WeightedSource{Source: newGuardedSource(ws.Source, conf.Feed), Weight: ws.Weight})
	}
	return &FeedService{
		ledger:    ledger,
		sources:   guarded,
		assembler: assembler,
		logs:      logs,
		codec:     codec,
		conf:      conf.Feed,
		now:       time.Now,
	}
}

// NewFeedSources 按配置权重组装三路召回，顺序即权重相同时的优先级
func NewFeedSources(affinity *AffinitySource, popularity *PopularitySource, engagement *EngagementSource, conf *config.Config) []WeightedSource {
	return []WeightedSource{
		{Source: affinity, Weight: conf.Feed.AffinityWeight},
		{Source: popularity, Weight: conf.Feed.PopularityWeight},
		{Source: engagement, Weight: conf.Feed.EngagementWeight},
	}
}

type sourceResult struct {
	source types.FeedSource
	items  []types.FeedCandidate
	err    error
}

// blendResult 一次召回 + 混排的结果
type blendResult struct {
	items    []types.FeedCandidate
	counts   map[types.FeedSource]int
	degraded []types.FeedSource
	// viewed 请求时刻的完整已看集合，截取窗口时跳过
	viewed map[uint64]struct{}
}

// healthy 三路召回全部成功才能断定“已刷完”，有任何一路降级都不重置
func (r *blendResult) healthy() bool {
	return len(r.degraded) == 0
}

// ListFeed 首屏以请求时刻开启新一轮翻页（generation），游标带着这一时刻。
// 翻页时用同一时刻的数据快照重建混排结果，再跳过之后看过的和本轮已下发的视频
func (s *FeedService) ListFeed(ctx context.Context, userID uint64, token string, limit int) (*types.VideoPage, error) {
	start := s.now()
	limit = s.conf.ClampLimit(limit)

	cur, hasCursor := s.decodeCursor(token)
	generation := start.UTC()
	if hasCursor {
		generation = cur.Time()
	}
	seed := FeedSeed(userID, generation.Truncate(s.conf.ShuffleWindow))

	result, err := s.fetch(ctx, userID, generation, hasCursor, limit, seed)
	if err != nil {
		metrics.FeedRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	reset := false
	if len(result.items) == 0 && !hasCursor && result.healthy() {
		log.L.Info("feed exhausted, resetting view history", zap.Uint64("user_id", userID))
		if err := s.reset(ctx, userID); err != nil {
			metrics.FeedRequests.WithLabelValues("error").Inc()
			return nil, err
		}
		reset = true

		result, err = s.fetch(ctx, userID, generation, hasCursor, limit, seed)
		if err != nil {
			metrics.FeedRequests.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	served := s.served(ctx, userID, generation, hasCursor)
	window := paginate(result.items, cur.VideoID, hasCursor, limit, func(id uint64) bool {
		if _, ok := result.viewed[id]; ok {
			return true
		}
		_, ok := served[id]
		return ok
	})

	ids := make([]uint64, 0, len(window))
	sources := make(map[uint64]types.FeedSource, len(window))
	for _, c := range window {
		ids = append(ids, c.VideoID)
		sources[c.VideoID] = c.Source
	}
	items, err := s.assembler.Assemble(ctx, userID, ids, sources)
	if err != nil {
		metrics.FeedRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	page := &types.VideoPage{Items: items}
	if len(window) == limit {
		page.NextCursor = encodeCursor(s.codec, cursor.FromTime(window[len(window)-1].VideoID, generation))
	}

	switch {
	case reset:
		metrics.FeedRequests.WithLabelValues("reset").Inc()
	case len(items) == 0:
		metrics.FeedRequests.WithLabelValues("empty").Inc()
	default:
		metrics.FeedRequests.WithLabelValues("served").Inc()
	}

	s.record(ctx, feedRecord{
		userID:     userID,
		generation: generation,
		limit:      limit,
		hasCursor:  hasCursor,
		reset:      reset,
		result:     result,
		ids:        ids,
		latency:    time.Since(start),
	})
	return page, nil
}

func (s *FeedService) decodeCursor(token string) (cursor.Cursor, bool) {
	if token == "" {
		return cursor.Cursor{}, false
	}
	cur, err := s.codec.Decode(token)
	if err != nil {
		log.L.Debug("invalid feed cursor, start from beginning", zap.String("cursor", token), zap.Error(err))
		return cursor.Cursor{}, false
	}
	return cur, true
}

// fetch 读取已看集合后并发召回再混排。已看集合读失败说明库不可用，直接失败。
// 翻页时召回只排除 generation 之前的观看记录，保证混排结果与首屏一致
func (s *FeedService) fetch(ctx context.Context, userID uint64, generation time.Time, hasCursor bool, limit int, seed uint64) (*blendResult, error) {
	viewed, err := s.ledger.ExcludedVideoIDs(ctx, userID)
	if err != nil {
		return nil, storeUnavailable("load view history", err)
	}
	snapshot := viewed
	if hasCursor {
		snapshot, err = s.ledger.ExcludedVideoIDsAsOf(ctx, userID, generation)
		if err != nil {
			return nil, storeUnavailable("load view history", err)
		}
	}

	results := s.collect(ctx, CandidateQuery{UserID: userID, AsOf: generation, Excluded: snapshot})

	result := &blendResult{counts: make(map[types.FeedSource]int, len(results)), viewed: viewed}
	pools := make([]CandidatePool, 0, len(results))
	for i, r := range results {
		if r.err != nil {
			result.degraded = append(result.degraded, r.source)
			continue
		}
		result.counts[r.source] = len(r.items)
		pools = append(pools, CandidatePool{Source: r.source, Weight: s.sources[i].Weight, Items: r.items})
	}
	result.items = Blend(pools, limit, seed)
	return result, nil
}

// collect 三路召回并发执行，每路独立超时，失败的一路按空处理
func (s *FeedService) collect(ctx context.Context, q CandidateQuery) []sourceResult {
	results := make([]sourceResult, len(s.sources))

	var wg conc.WaitGroup
	for i, ws := range s.sources {
		wg.Go(func() {
			name := ws.Source.Name()
			sctx, cancel := context.WithTimeout(ctx, s.conf.SourceTimeout)
			defer cancel()

			begin := time.Now()
			items, err := ws.Source.Candidates(sctx, q)
			metrics.SourceDuration.WithLabelValues(string(name)).Observe(time.Since(begin).Seconds())

			if err != nil {
				metrics.SourceFailures.WithLabelValues(string(name)).Inc()
				log.L.Warn("feed source unavailable",
					zap.String("source", string(name)),
					zap.Uint64("user_id", q.UserID),
					zap.Error(err),
				)
			}
			results[i] = sourceResult{source: name, items: items, err: err}
		})
	}
	wg.Wait()

	return results
}

// reset 同一用户并发的重置合并为一次。
// 共享的那次调用不跟随任何一个请求的取消，先到的请求断开不影响其他等待者
func (s *FeedService) reset(ctx context.Context, userID uint64) error {
	shared := context.WithoutCancel(ctx)
	_, err, _ := s.resets.Do(strconv.FormatUint(userID, 10), func() (any, error) {
		return nil, s.ledger.ResetForUser(shared, userID)
	})
	if err != nil {
		return storeUnavailable("reset view history", err)
	}
	metrics.FeedResets.Inc()
	return nil
}

// served 本轮翻页已下发过的视频，读失败时只记日志
func (s *FeedService) served(ctx context.Context, userID uint64, generation time.Time, hasCursor bool) map[uint64]struct{} {
	if !hasCursor || s.logs == nil {
		return nil
	}
	served, err := s.logs.ServedVideoIDs(ctx, userID, generation.UnixNano())
	if err != nil {
		log.L.Warn("load served videos failed", zap.Uint64("user_id", userID), zap.Error(err))
		return nil
	}
	return served
}

// paginate 游标指向的视频仍在混排结果中时从它之后开始，否则从头开始；skip 命中的视频不下发
func paginate(items []types.FeedCandidate, anchor uint64, hasCursor bool, limit int, skip func(uint64) bool) []types.FeedCandidate {
	start := 0
	if hasCursor {
		for i, c := range items {
			if c.VideoID == anchor {
				start = i + 1
				break
			}
		}
	}

	window := make([]types.FeedCandidate, 0, limit)
	for _, c := range items[start:] {
		if len(window) == limit {
			break
		}
		if skip(c.VideoID) {
			continue
		}
		window = append(window, c)
	}
	return window
}

type feedRecord struct {
	userID     uint64
	generation time.Time
	limit      int
	hasCursor  bool
	reset      bool
	result     *blendResult
	ids        []uint64
	latency    time.Duration
}

// record 落推荐日志，失败只记日志。日志同时是本轮翻页已下发视频的来源
func (s *FeedService) record(ctx context.Context, r feedRecord) {
	if s.logs == nil {
		return
	}

	counts, _ := json.Marshal(r.result.counts)
	degraded, _ := json.Marshal(r.result.degraded)
	videoIDs, _ := json.Marshal(r.ids)

	entry := &models.FeedRecommendationLog{
		ID:              snowflake.GenID(),
		UserID:          r.userID,
		Generation:      r.generation.UnixNano(),
		RequestLimit:    r.limit,
		HasCursor:       r.hasCursor,
		Reset:           r.reset,
		SourceCounts:    counts,
		DegradedSources: degraded,
		VideoIDs:        videoIDs,
		LatencyMs:       r.latency.Milliseconds(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		log.L.Warn("save feed recommendation log failed", zap.Uint64("user_id", r.userID), zap.Error(err))
	}
}
