package service

import (
	"Tribune/config"
	"Tribune/dao"
	"Tribune/dao/cache"
	"Tribune/pkg/cursor"
	"Tribune/pkg/log"
	"Tribune/types"
	"context"

	"go.uber.org/zap"
)

var _ IBookmarkService = (*BookmarkService)(nil)

type IBookmarkService interface {
	Toggle(ctx context.Context, userID, videoID uint64) (bool, error)
	List(ctx context.Context, userID uint64, token string, limit int) (*types.VideoPage, error)
}

// BookmarkIndex 判断视频是否被用户收藏，优先走 redis
type BookmarkIndex struct {
	DAO   *dao.VideoBookmarkDAO
	Cache *cache.BookmarkStorage
}

// Check 批量判断收藏状态
func (b *BookmarkIndex) Check(ctx context.Context, userID uint64, videoIDs []uint64) (map[uint64]bool, error) {
	if len(videoIDs) == 0 {
		return map[uint64]bool{}, nil
	}
	if !b.Cache.Enabled() {
		return b.DAO.BatchCheckExists(ctx, userID, videoIDs)
	}

	set, ok, err := b.Cache.Members(ctx, userID)
	if err != nil {
		log.L.Warn("read bookmark cache failed", zap.Uint64("user_id", userID), zap.Error(err))
		return b.DAO.BatchCheckExists(ctx, userID, videoIDs)
	}
	if !ok {
		ids, err := b.DAO.VideoIDsByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := b.Cache.Fill(ctx, userID, ids); err != nil {
			log.L.Warn("fill bookmark cache failed", zap.Uint64("user_id", userID), zap.Error(err))
		}
		set = make(map[uint64]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}

	result := make(map[uint64]bool, len(videoIDs))
	for _, id := range videoIDs {
		if _, ok := set[id]; ok {
			result[id] = true
		}
	}
	return result, nil
}

func (b *BookmarkIndex) Invalidate(ctx context.Context, userID uint64) {
	if err := b.Cache.Invalidate(ctx, userID); err != nil {
		log.L.Warn("invalidate bookmark cache failed", zap.Uint64("user_id", userID), zap.Error(err))
	}
}

type BookmarkService struct {
	DAO       *dao.VideoBookmarkDAO
	VideoDAO  *dao.VideoDAO
	Index     *BookmarkIndex
	Assembler *VideoAssembler
	Codec     *cursor.Codec
	Config    *config.Config
}

// Toggle 收藏/取消收藏，返回操作后的状态
func (s *BookmarkService) Toggle(ctx context.Context, userID, videoID uint64) (bool, error) {
	exist, err := s.VideoDAO.IsExist(ctx, "id = ?", videoID)
	if err != nil {
		return false, storeUnavailable("check video", err)
	}
	if !exist {
		return false, ErrVideoNotFound
	}

	bookmarked, err := s.DAO.Toggle(ctx, userID, videoID)
	if err != nil {
		return false, storeUnavailable("toggle bookmark", err)
	}
	s.Index.Invalidate(ctx, userID)

	log.L.Info("bookmark toggled",
		zap.Uint64("user_id", userID),
		zap.Uint64("video_id", videoID),
		zap.Bool("bookmarked", bookmarked),
	)
	return bookmarked, nil
}

// List 收藏列表，按收藏时间倒序
func (s *BookmarkService) List(ctx context.Context, userID uint64, token string, limit int) (*types.VideoPage, error) {
	limit = s.Config.Feed.ClampLimit(limit)
	after := keysetFromToken(s.Codec, token)

	rows, err := s.DAO.ListByUser(ctx, userID, after, limit)
	if err != nil {
		return nil, storeUnavailable("list bookmarks", err)
	}

	ids := make([]uint64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.VideoID)
	}
	items, err := s.Assembler.Assemble(ctx, userID, ids, nil)
	if err != nil {
		return nil, err
	}

	page := &types.VideoPage{Items: items}
	if len(rows) == limit {
		last := rows[len(rows)-1]
		page.NextCursor = encodeCursor(s.Codec, cursor.FromTime(last.VideoID, last.CreatedAt))
	}
	return page, nil
}

// keysetFromToken 游标无效时从头开始
func keysetFromToken(codec *cursor.Codec, token string) *dao.Keyset {
	if token == "" {
		return nil
	}
	cur, err := codec.Decode(token)
	if err != nil {
		log.L.Debug("invalid cursor, start from beginning", zap.String("cursor", token), zap.Error(err))
		return nil
	}
	return &dao.Keyset{CreatedAt: cur.Time(), ID: cur.VideoID}
}

func encodeCursor(codec *cursor.Codec, cur cursor.Cursor) string {
	token, err := codec.Encode(cur)
	if err != nil {
		log.L.Error("encode cursor failed", zap.Uint64("video_id", cur.VideoID), zap.Error(err))
		return ""
	}
	return token
}
