package dao

import (
	"Tribune/models"
	"context"
	"time"

	"gorm.io/gorm"
)

// CandidateRow 召回结果，Score 含义由各路召回决定
type CandidateRow struct {
	VideoID uint64 `gorm:"column:video_id"`
	Score   int64  `gorm:"column:score"`
}

// CandidateFilter 三路召回共用的条件。
// 只统计 AsOf 之前的视频、投票、评论和观看记录，同一轮翻页用同一个 AsOf 能重建出相同的候选
type CandidateFilter struct {
	UserID uint64
	AsOf   time.Time
	// Since 近期窗口起点，Affinity 不使用
	Since time.Time
	Limit int
}

// CandidateDAO 三路召回查询，全部只读
type CandidateDAO struct {
	Db *gorm.DB
}

func NewCandidateDAO(db *gorm.DB) *CandidateDAO {
	return &CandidateDAO{Db: db}
}

// Affinity 协同过滤：与用户至少共同赞成过一个视频的人，他们赞成过的视频，按共同投票人数倒序
func (d *CandidateDAO) Affinity(ctx context.Context, f CandidateFilter) ([]CandidateRow, error) {
	peers := d.Db.
		Table("votes AS peer").
		Select("DISTINCT peer.user_id").
		Joins("JOIN votes AS mine ON mine.target_type = peer.target_type AND mine.target_id = peer.target_id").
		Where("mine.user_id = ? AND mine.target_type = ? AND mine.value = 1 AND mine.created_at <= ?", f.UserID, models.TargetVideo, f.AsOf).
		Where("peer.user_id <> ? AND peer.value = 1 AND peer.created_at <= ?", f.UserID, f.AsOf)

	query := d.Db.WithContext(ctx).
		Table("videos AS v").
		Select("v.id AS video_id, COUNT(DISTINCT co.user_id) AS score").
		Joins("JOIN votes AS co ON co.target_type = ? AND co.target_id = v.id AND co.value = 1 AND co.created_at <= ?", models.TargetVideo, f.AsOf).
		Where("co.user_id IN (?)", peers)

	return d.ranked(query, f)
}

// Popular 时间窗口内净票数最高的视频
func (d *CandidateDAO) Popular(ctx context.Context, f CandidateFilter) ([]CandidateRow, error) {
	query := d.Db.WithContext(ctx).
		Table("videos AS v").
		Select("v.id AS video_id, COALESCE(SUM(vo.value), 0) AS score").
		Joins("LEFT JOIN votes AS vo ON vo.target_type = ? AND vo.target_id = v.id AND vo.created_at <= ?", models.TargetVideo, f.AsOf).
		Where("v.created_at > ?", f.Since)

	return d.ranked(query, f)
}

// Engagement 时间窗口内互动最多的视频，评论权重为投票的两倍
func (d *CandidateDAO) Engagement(ctx context.Context, f CandidateFilter) ([]CandidateRow, error) {
	query := d.Db.WithContext(ctx).
		Table("videos AS v").
		Select("v.id AS video_id, COUNT(DISTINCT vo.id) + 2 * COUNT(DISTINCT c.id) AS score").
		Joins("LEFT JOIN votes AS vo ON vo.target_type = ? AND vo.target_id = v.id AND vo.created_at <= ?", models.TargetVideo, f.AsOf).
		Joins("LEFT JOIN comments AS c ON c.target_type = ? AND c.target_id = v.id AND c.created_at <= ?", models.TargetVideo, f.AsOf).
		Where("v.created_at > ?", f.Since)

	return d.ranked(query, f)
}

// ranked 统一的快照、已看排除、分组和排序：分数倒序，再按创建时间、ID倒序。
// 已看集合走子查询，不随观看记录数量增加绑定参数
func (d *CandidateDAO) ranked(query *gorm.DB, f CandidateFilter) ([]CandidateRow, error) {
	rows := make([]CandidateRow, 0, f.Limit)
	err := query.
		Where("v.created_at <= ?", f.AsOf).
		Where("NOT EXISTS (SELECT 1 FROM video_views AS vv WHERE vv.user_id = ? AND vv.video_id = v.id AND vv.created_at <= ?)", f.UserID, f.AsOf).
		Group("v.id, v.created_at").
		Order("score DESC").
		Order("v.created_at DESC").
		Order("v.id DESC").
		Limit(f.Limit).
		Scan(&rows).Error
	return rows, err
}
