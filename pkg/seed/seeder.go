package seed

import (
	"Tribune/dao"
	"Tribune/models"
	"Tribune/pkg/log"
	"Tribune/pkg/snowflake"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
)

// Options 造数规模
type Options struct {
	Users  int
	Videos int
	// 随机种子，0 表示按当前时间
	Seed int64
	// 视频创建时间分布在最近 Within 内
	Within time.Duration
}

type Stats struct {
	Videos   int
	Votes    int
	Comments int
}

// Seeder 给本地环境造视频、投票和评论
type Seeder struct {
	Videos   *dao.VideoDAO
	Votes    *dao.VoteDAO
	Comments *dao.CommentDAO
}

func (s *Seeder) Run(ctx context.Context, opts Options) (*Stats, error) {
	if opts.Users <= 0 || opts.Videos <= 0 {
		return nil, errors.New("users 和 videos 必须大于 0")
	}
	if opts.Within <= 0 {
		opts.Within = 72 * time.Hour
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	_ = gofakeit.Seed(seed)

	// 用户ID从 10001 开始，方便和线上区分
	users := make([]uint64, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		users = append(users, uint64(10001+i))
	}

	stats := &Stats{}
	now := time.Now().UTC()
	videos := make([]*models.Video, 0, opts.Videos)
	for i := 0; i < opts.Videos; i++ {
		targetType := models.TargetProposal
		if gofakeit.Bool() {
			targetType = models.TargetProgram
		}
		duration := gofakeit.IntRange(5, 180)
		v := &models.Video{
			ID:              snowflake.GenID(),
			OwnerUserID:     users[gofakeit.IntRange(0, len(users)-1)],
			TargetType:      targetType,
			TargetID:        uint64(gofakeit.IntRange(1, 20)),
			StorageBucket:   "tribune-videos",
			StorageKey:      fmt.Sprintf("videos/%s/%s.mp4", gofakeit.Word(), gofakeit.UUID()),
			ContentType:     "video/mp4",
			DurationSeconds: &duration,
			CreatedAt:       gofakeit.DateRange(now.Add(-opts.Within), now).UTC(),
		}
		if err := s.Videos.Create(ctx, v); err != nil {
			return stats, fmt.Errorf("create video: %w", err)
		}
		videos = append(videos, v)
		stats.Videos++
	}

	for _, uid := range users {
		// 每个用户给一部分视频投票，赞成居多
		for _, v := range videos {
			if gofakeit.IntRange(0, 99) >= 30 {
				continue
			}
			value := int8(1)
			if gofakeit.IntRange(0, 99) < 20 {
				value = -1
			}
			vote := &models.Vote{
				ID:         snowflake.GenID(),
				UserID:     uid,
				TargetType: models.TargetVideo,
				TargetID:   v.ID,
				Value:      value,
				CreatedAt:  v.CreatedAt,
				UpdatedAt:  v.CreatedAt,
			}
			if err := s.Votes.Upsert(ctx, vote); err != nil {
				return stats, fmt.Errorf("upsert vote: %w", err)
			}
			stats.Votes++
		}
	}

	for _, v := range videos {
		n := gofakeit.IntRange(0, 3)
		for i := 0; i < n; i++ {
			comment := &models.Comment{
				ID:           snowflake.GenID(),
				TargetType:   models.TargetVideo,
				TargetID:     v.ID,
				AuthorUserID: users[gofakeit.IntRange(0, len(users)-1)],
				Body:         gofakeit.HipsterSentence(),
				CreatedAt:    gofakeit.DateRange(v.CreatedAt, now).UTC(),
			}
			if err := s.Comments.Create(ctx, comment); err != nil {
				return stats, fmt.Errorf("create comment: %w", err)
			}
			stats.Comments++
		}
	}

	total, err := s.Videos.Count(ctx)
	if err != nil {
		return stats, err
	}
	log.L.Info("seed finished",
		zap.Int("videos", stats.Videos),
		zap.Int("votes", stats.Votes),
		zap.Int("comments", stats.Comments),
		zap.Int64("total_videos", total),
	)
	return stats, nil
}
