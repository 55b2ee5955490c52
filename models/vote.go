package models

import "time"

// Vote 投票记录
// 对应表 votes
// 唯一键: user_id + target_type + target_id
// value: 1=赞成, -1=反对
type Vote struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID     uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_vote_user_target,priority:1" json:"user_id"`
	TargetType string    `gorm:"column:target_type;type:varchar(16);not null;uniqueIndex:uk_vote_user_target,priority:2;index:idx_vote_target,priority:1" json:"target_type"`
	TargetID   uint64    `gorm:"column:target_id;not null;uniqueIndex:uk_vote_user_target,priority:3;index:idx_vote_target,priority:2" json:"target_id"`
	Value      int8      `gorm:"column:value;not null" json:"value"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Vote) TableName() string { return "votes" }
