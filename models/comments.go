package models

import (
	"time"
)

// Comment 评论表结构，推荐流只用来统计互动
type Comment struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	TargetType   string    `gorm:"column:target_type;type:varchar(16);not null;index:idx_comment_target,priority:1" json:"target_type"`
	TargetID     uint64    `gorm:"column:target_id;not null;index:idx_comment_target,priority:2" json:"target_id"`
	AuthorUserID uint64    `gorm:"column:author_user_id;not null;index:idx_comment_author" json:"author_user_id"`
	ParentID     *uint64   `gorm:"column:parent_id" json:"parent_id,omitempty"` // 直接上级评论ID
	Body         string    `gorm:"column:body;type:text;not null" json:"body"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName 指定 GORM 使用的表名
func (Comment) TableName() string {
	return "comments"
}
