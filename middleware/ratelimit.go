package middleware

import (
	ctxutil "Tribune/pkg/context"
	"Tribune/pkg/response"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/time/rate"
)

const (
	bucketIdleTTL  = time.Hour
	bucketSweepGap = 5 * time.Minute
)

type bucket struct {
	limiter    *rate.Limiter
	lastAccess atomic.Int64
}

// RateLimiter 按用户的令牌桶，未登录请求按 IP 计。
// 超过一小时没有访问的桶由后台协程定期回收
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	buckets cmap.ConcurrentMap[string, *bucket]
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	l := &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		buckets: cmap.New[*bucket](),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go l.startCleanup(bucketSweepGap)
	return l
}

func (l *RateLimiter) Allow(key string) bool {
	b := l.buckets.Upsert(key, nil, func(exist bool, old *bucket, _ *bucket) *bucket {
		if exist {
			return old
		}
		return &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
	})
	b.lastAccess.Store(l.now().UnixNano())
	return b.limiter.Allow()
}

// Stop 停止后台回收，可重复调用
func (l *RateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *RateLimiter) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup(bucketIdleTTL)
		case <-l.stop:
			return
		}
	}
}

// cleanup 删除 idle 时间内没有访问过的桶
func (l *RateLimiter) cleanup(idle time.Duration) {
	threshold := l.now().Add(-idle).UnixNano()
	for item := range l.buckets.IterBuffered() {
		l.buckets.RemoveCb(item.Key, func(_ string, b *bucket, exists bool) bool {
			return exists && b.lastAccess.Load() < threshold
		})
	}
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if uid, err := ctxutil.GetUserID(c); err == nil {
			key = strconv.FormatUint(uid, 10)
		}

		if !l.Allow(key) {
			response.Abort(c, http.StatusTooManyRequests, "请求过于频繁")
			return
		}
		c.Next()
	}
}
