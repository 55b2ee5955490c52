package dao

import (
	"Tribune/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteDAO struct {
	Repo[models.Vote]
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{Repo: NewRepo[models.Vote](db)}
}

// HasVideoUpvote 用户是否给视频投过赞成票，协同过滤只看视频上的共同赞成
func (d *VoteDAO) HasVideoUpvote(ctx context.Context, userID uint64) (bool, error) {
	return d.IsExist(ctx, "user_id = ? AND target_type = ? AND value = 1", userID, models.TargetVideo)
}

type scoreRow struct {
	TargetID uint64 `gorm:"column:target_id"`
	Score    int64  `gorm:"column:score"`
}

// ScoresOf 批量统计净票数，没有投票的对象不在结果中
func (d *VoteDAO) ScoresOf(ctx context.Context, targetType string, ids []uint64) (map[uint64]int64, error) {
	result := make(map[uint64]int64, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []scoreRow
	err := d.Model(ctx).
		Select("target_id, COALESCE(SUM(value), 0) AS score").
		Where("target_type = ? AND target_id IN ?", targetType, ids).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.TargetID] = row.Score
	}
	return result, nil
}

// Upsert 投票，重复投票覆盖原值
func (d *VoteDAO) Upsert(ctx context.Context, vote *models.Vote) error {
	return d.Db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(vote).Error
}
