package dao

import (
	"Tribune/models"
	"Tribune/pkg/log"
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoViewDAO 观看记录账本
type VideoViewDAO struct {
	Repo[models.VideoView]
}

func NewVideoViewDAO(db *gorm.DB) *VideoViewDAO {
	return &VideoViewDAO{Repo: NewRepo[models.VideoView](db)}
}

// RecordView 记录观看，已存在时什么都不做
func (d *VideoViewDAO) RecordView(ctx context.Context, userID, videoID uint64) error {
	view := models.VideoView{UserID: userID, VideoID: videoID}
	result := d.Db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).
		Create(&view)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		log.L.Debug("view already recorded", zap.Uint64("user_id", userID), zap.Uint64("video_id", videoID))
	}
	return nil
}

// ExcludedVideoIDs 用户当前轮次看过的全部视频
func (d *VideoViewDAO) ExcludedVideoIDs(ctx context.Context, userID uint64) (map[uint64]struct{}, error) {
	return d.pluckExcluded(d.Model(ctx).Where("user_id = ?", userID))
}

// ExcludedVideoIDsAsOf 用户在 asOf 之前（含）记下的观看记录
func (d *VideoViewDAO) ExcludedVideoIDsAsOf(ctx context.Context, userID uint64, asOf time.Time) (map[uint64]struct{}, error) {
	return d.pluckExcluded(d.Model(ctx).Where("user_id = ? AND created_at <= ?", userID, asOf))
}

func (d *VideoViewDAO) pluckExcluded(query *gorm.DB) (map[uint64]struct{}, error) {
	var ids []uint64
	if err := query.Pluck("video_id", &ids).Error; err != nil {
		return nil, err
	}

	excluded := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		excluded[id] = struct{}{}
	}
	return excluded, nil
}

// ResetForUser 清空用户的观看记录，重复调用是安全的
func (d *VideoViewDAO) ResetForUser(ctx context.Context, userID uint64) error {
	return d.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.VideoView{}).Error
}
