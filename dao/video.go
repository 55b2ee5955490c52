package dao

import (
	"Tribune/models"
	"context"
	"time"

	"gorm.io/gorm"
)

// Keyset 按 (created_at, id) 倒序翻页的位置
type Keyset struct {
	CreatedAt time.Time
	ID        uint64
}

type VideoDAO struct {
	Repo[models.Video]
}

func NewVideoDAO(db *gorm.DB) *VideoDAO {
	return &VideoDAO{Repo: NewRepo[models.Video](db)}
}

// ListByTarget 查询某个提案/纲领下的视频，按创建时间倒序，after 为空时从头开始
func (d *VideoDAO) ListByTarget(ctx context.Context, targetType string, targetID uint64, after *Keyset, limit int) ([]*models.Video, error) {
	var videos []*models.Video
	query := d.Db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID)

	if after != nil {
		query = query.Where("(created_at < ? OR (created_at = ? AND id < ?))", after.CreatedAt, after.CreatedAt, after.ID)
	}

	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

// MapByIDs 批量查询并按ID建索引，已删除的视频不会出现在结果里
func (d *VideoDAO) MapByIDs(ctx context.Context, ids []uint64) (map[uint64]*models.Video, error) {
	videos, err := d.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	result := make(map[uint64]*models.Video, len(videos))
	for _, v := range videos {
		result[v.ID] = v
	}
	return result, nil
}

// Count 视频总数
func (d *VideoDAO) Count(ctx context.Context) (int64, error) {
	var n int64
	err := d.Model(ctx).Count(&n).Error
	return n, err
}
