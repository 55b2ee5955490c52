package dao

import (
	"Tribune/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoBookmarkDAO struct {
	Repo[models.VideoBookmark]
}

func NewVideoBookmarkDAO(db *gorm.DB) *VideoBookmarkDAO {
	return &VideoBookmarkDAO{Repo: NewRepo[models.VideoBookmark](db)}
}

// Toggle 切换收藏状态，返回切换后的状态
func (d *VideoBookmarkDAO) Toggle(ctx context.Context, userID, videoID uint64) (bool, error) {
	var bookmarked bool
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND video_id = ?", userID, videoID).
			Delete(&models.VideoBookmark{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			bookmarked = false
			return nil
		}

		item := models.VideoBookmark{UserID: userID, VideoID: videoID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
			return err
		}
		bookmarked = true
		return nil
	})
	return bookmarked, err
}

// VideoIDsByUser 用户收藏的全部视频ID
func (d *VideoBookmarkDAO) VideoIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Model(ctx).Where("user_id = ?", userID).Pluck("video_id", &ids).Error
	return ids, err
}

// BatchCheckExists 批量判断是否已收藏
func (d *VideoBookmarkDAO) BatchCheckExists(ctx context.Context, userID uint64, videoIDs []uint64) (map[uint64]bool, error) {
	result := make(map[uint64]bool, len(videoIDs))
	if len(videoIDs) == 0 {
		return result, nil
	}

	var ids []uint64
	err := d.Model(ctx).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}

// BookmarkedVideo 收藏列表的一行
type BookmarkedVideo struct {
	VideoID   uint64    `gorm:"column:video_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// ListByUser 按收藏时间倒序翻页，只返回视频仍存在的收藏
func (d *VideoBookmarkDAO) ListByUser(ctx context.Context, userID uint64, after *Keyset, limit int) ([]BookmarkedVideo, error) {
	var rows []BookmarkedVideo
	query := d.Db.WithContext(ctx).
		Table("video_bookmarks AS b").
		Select("b.video_id, b.created_at").
		Joins("JOIN videos AS v ON v.id = b.video_id").
		Where("b.user_id = ?", userID)

	if after != nil {
		query = query.Where("(b.created_at < ? OR (b.created_at = ? AND b.video_id < ?))", after.CreatedAt, after.CreatedAt, after.ID)
	}

	err := query.
		Order("b.created_at DESC").
		Order("b.video_id DESC").
		Limit(limit).
		Scan(&rows).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rows, nil
	}
	return rows, err
}
