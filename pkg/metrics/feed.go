package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// 推荐流请求数，outcome: served / reset / empty / error
	FeedRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tribune_feed_requests_total",
			Help: "Total number of feed requests by outcome",
		},
		[]string{"outcome"},
	)

	// 召回降级次数
	SourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tribune_feed_source_failures_total",
			Help: "Candidate source failures and timeouts",
		},
		[]string{"source"},
	)

	SourceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tribune_feed_source_duration_seconds",
			Help:    "Candidate source latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"source"},
	)

	FeedResets = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tribune_feed_resets_total",
			Help: "View ledger resets triggered by feed exhaustion",
		},
	)
)

func init() {
	prometheus.MustRegister(FeedRequests)
	prometheus.MustRegister(SourceFailures)
	prometheus.MustRegister(SourceDuration)
	prometheus.MustRegister(FeedResets)
}
