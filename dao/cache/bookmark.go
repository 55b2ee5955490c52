package cache

import (
	"Tribune/config"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 空集合占位，区分“没有收藏”和“缓存未命中”
const bookmarkPlaceholder = "0"

// BookmarkStorage 用户收藏集合缓存
// feed:bookmark:{uid} -> SET(video_id)
type BookmarkStorage struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewBookmarkStorage redis 为 nil 时所有操作都视为未命中
func NewBookmarkStorage(rds *redis.Client, conf *config.Config) *BookmarkStorage {
	return &BookmarkStorage{redis: rds, ttl: conf.Feed.BookmarkCacheTTL}
}

func (b *BookmarkStorage) Enabled() bool {
	return b != nil && b.redis != nil
}

// Members 读取收藏集合，ok=false 表示未命中
func (b *BookmarkStorage) Members(ctx context.Context, uid uint64) (map[uint64]struct{}, bool, error) {
	if !b.Enabled() {
		return nil, false, nil
	}

	items, err := b.redis.SMembers(ctx, b.name(uid)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, nil
	}

	set := make(map[uint64]struct{}, len(items))
	for _, item := range items {
		if item == bookmarkPlaceholder {
			continue
		}
		if id, err := strconv.ParseUint(item, 10, 64); err == nil {
			set[id] = struct{}{}
		}
	}
	return set, true, nil
}

// Fill 覆盖写入收藏集合
func (b *BookmarkStorage) Fill(ctx context.Context, uid uint64, ids []uint64) error {
	if !b.Enabled() {
		return nil
	}

	members := make([]any, 0, len(ids)+1)
	members = append(members, bookmarkPlaceholder)
	for _, id := range ids {
		members = append(members, strconv.FormatUint(id, 10))
	}

	name := b.name(uid)
	_, err := b.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, name)
		pipe.SAdd(ctx, name, members...)
		pipe.Expire(ctx, name, b.ttl)
		return nil
	})
	return err
}

// Invalidate 收藏变化后删除缓存
func (b *BookmarkStorage) Invalidate(ctx context.Context, uid uint64) error {
	if !b.Enabled() {
		return nil
	}
	return b.redis.Del(ctx, b.name(uid)).Err()
}

func (b *BookmarkStorage) name(uid uint64) string {
	return fmt.Sprintf("feed:bookmark:%d", uid)
}
