package config

import "time"

// Feed 推荐流配置
type Feed struct {
	AffinityWeight   int `json:"affinity_weight" yaml:"affinity_weight"`
	PopularityWeight int `json:"popularity_weight" yaml:"popularity_weight"`
	EngagementWeight int `json:"engagement_weight" yaml:"engagement_weight"`

	AffinityCap   int `json:"affinity_cap" yaml:"affinity_cap"`
	PopularityCap int `json:"popularity_cap" yaml:"popularity_cap"`
	EngagementCap int `json:"engagement_cap" yaml:"engagement_cap"`

	// 热门、互动两路的时间窗口
	RecencyWindow time.Duration `json:"recency_window" yaml:"recency_window"`
	SourceTimeout time.Duration `json:"source_timeout" yaml:"source_timeout"`
	// 打散种子按该窗口取整，窗口内重试结果一致
	ShuffleWindow time.Duration `json:"shuffle_window" yaml:"shuffle_window"`

	DefaultLimit int `json:"default_limit" yaml:"default_limit"`
	MaxLimit     int `json:"max_limit" yaml:"max_limit"`

	CursorSalt string `json:"cursor_salt" yaml:"cursor_salt"`

	BreakerFailures int           `json:"breaker_failures" yaml:"breaker_failures"`
	BreakerTimeout  time.Duration `json:"breaker_timeout" yaml:"breaker_timeout"`

	BookmarkCacheTTL time.Duration `json:"bookmark_cache_ttl" yaml:"bookmark_cache_ttl"`

	MarkViewedRate  float64 `json:"mark_viewed_rate" yaml:"mark_viewed_rate"`
	MarkViewedBurst int     `json:"mark_viewed_burst" yaml:"mark_viewed_burst"`
}

func (f *Feed) fill() {
	if f.AffinityWeight == 0 && f.PopularityWeight == 0 && f.EngagementWeight == 0 {
		f.AffinityWeight, f.PopularityWeight, f.EngagementWeight = 4, 3, 3
	}
	if f.AffinityCap == 0 {
		f.AffinityCap = 20
	}
	if f.PopularityCap == 0 {
		f.PopularityCap = 15
	}
	if f.EngagementCap == 0 {
		f.EngagementCap = 15
	}
	if f.RecencyWindow == 0 {
		f.RecencyWindow = 7 * 24 * time.Hour
	}
	if f.SourceTimeout == 0 {
		f.SourceTimeout = 800 * time.Millisecond
	}
	if f.ShuffleWindow == 0 {
		f.ShuffleWindow = 5 * time.Minute
	}
	if f.DefaultLimit == 0 {
		f.DefaultLimit = 10
	}
	if f.MaxLimit == 0 {
		f.MaxLimit = 50
	}
	if f.CursorSalt == "" {
		f.CursorSalt = "tribune-feed"
	}
	if f.BreakerFailures == 0 {
		f.BreakerFailures = 5
	}
	if f.BreakerTimeout == 0 {
		f.BreakerTimeout = 30 * time.Second
	}
	if f.BookmarkCacheTTL == 0 {
		f.BookmarkCacheTTL = 10 * time.Minute
	}
	if f.MarkViewedRate == 0 {
		f.MarkViewedRate = 20
	}
	if f.MarkViewedBurst == 0 {
		f.MarkViewedBurst = 40
	}
}

// ClampLimit 限制分页大小在 [1, MaxLimit]
func (f *Feed) ClampLimit(limit int) int {
	if limit <= 0 {
		return f.DefaultLimit
	}
	if limit > f.MaxLimit {
		return f.MaxLimit
	}
	return limit
}
