package service

import (
	"Tribune/config"
	"Tribune/dao"
	"Tribune/models"
	"Tribune/pkg/cursor"
	"Tribune/pkg/log"
	"Tribune/types"
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ViewLedger 观看记录账本
type ViewLedger interface {
	RecordView(ctx context.Context, userID, videoID uint64) error
	ExcludedVideoIDs(ctx context.Context, userID uint64) (map[uint64]struct{}, error)
	ExcludedVideoIDsAsOf(ctx context.Context, userID uint64, asOf time.Time) (map[uint64]struct{}, error)
	ResetForUser(ctx context.Context, userID uint64) error
}

var _ ViewLedger = (*dao.VideoViewDAO)(nil)

// VideoAssembler 把视频ID组装成返回结构：视频详情、净票数、收藏状态
type VideoAssembler struct {
	VideoDAO *dao.VideoDAO
	VoteDAO  *dao.VoteDAO
	Index    *BookmarkIndex
}

// Assemble 保持 ids 的顺序，已被删除的视频直接跳过
func (a *VideoAssembler) Assemble(ctx context.Context, userID uint64, ids []uint64, sources map[uint64]types.FeedSource) ([]*types.Video, error) {
	items := make([]*types.Video, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	var (
		videos     map[uint64]*models.Video
		scores     map[uint64]int64
		bookmarked map[uint64]bool
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		videos, err = a.VideoDAO.MapByIDs(egCtx, ids)
		return err
	})
	eg.Go(func() error {
		var err error
		scores, err = a.VoteDAO.ScoresOf(egCtx, models.TargetVideo, ids)
		return err
	})
	eg.Go(func() error {
		var err error
		bookmarked, err = a.Index.Check(egCtx, userID, ids)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, storeUnavailable("assemble videos", err)
	}

	for _, id := range ids {
		v, ok := videos[id]
		if !ok {
			continue
		}
		item := &types.Video{
			ID:              v.ID,
			OwnerUserID:     v.OwnerUserID,
			TargetType:      v.TargetType,
			TargetID:        v.TargetID,
			StorageBucket:   v.StorageBucket,
			StorageKey:      v.StorageKey,
			ContentType:     v.ContentType,
			DurationSeconds: v.DurationSeconds,
			CreatedAt:       v.CreatedAt,
			VoteScore:       scores[id],
			Bookmarked:      bookmarked[id],
		}
		if src, ok := sources[id]; ok {
			item.Source = string(src)
		}
		items = append(items, item)
	}
	return items, nil
}

var _ IVideoService = (*VideoService)(nil)

type IVideoService interface {
	MarkViewed(ctx context.Context, userID, videoID uint64) error
	ListContentVideos(ctx context.Context, userID uint64, targetType string, targetID uint64, token string, limit int) (*types.VideoPage, error)
}

type VideoService struct {
	VideoDAO  *dao.VideoDAO
	Ledger    ViewLedger
	Assembler *VideoAssembler
	Codec     *cursor.Codec
	Config    *config.Config
}

// MarkViewed 标记已看，重复标记直接成功
func (s *VideoService) MarkViewed(ctx context.Context, userID, videoID uint64) error {
	exist, err := s.VideoDAO.IsExist(ctx, "id = ?", videoID)
	if err != nil {
		return storeUnavailable("check video", err)
	}
	if !exist {
		return ErrVideoNotFound
	}

	if err := s.Ledger.RecordView(ctx, userID, videoID); err != nil {
		return storeUnavailable("record view", err)
	}
	log.L.Debug("video viewed", zap.Uint64("user_id", userID), zap.Uint64("video_id", videoID))
	return nil
}

// ListContentVideos 单个提案/纲领下的视频，按创建时间倒序，不做个性化
func (s *VideoService) ListContentVideos(ctx context.Context, userID uint64, targetType string, targetID uint64, token string, limit int) (*types.VideoPage, error) {
	limit = s.Config.Feed.ClampLimit(limit)
	after := keysetFromToken(s.Codec, token)

	videos, err := s.VideoDAO.ListByTarget(ctx, targetType, targetID, after, limit)
	if err != nil {
		return nil, storeUnavailable("list content videos", err)
	}

	ids := make([]uint64, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	items, err := s.Assembler.Assemble(ctx, userID, ids, nil)
	if err != nil {
		return nil, err
	}

	page := &types.VideoPage{Items: items}
	if len(videos) == limit {
		last := videos[len(videos)-1]
		page.NextCursor = encodeCursor(s.Codec, cursor.FromTime(last.ID, last.CreatedAt))
	}
	return page, nil
}
