package models

import "time"

// VideoView 观看记录
// 唯一键: user_id + video_id，整组记录在刷完后按用户清空
type VideoView struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_view_user_video,priority:1" json:"user_id"`
	VideoID   uint64    `gorm:"column:video_id;not null;uniqueIndex:uk_view_user_video,priority:2" json:"video_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (VideoView) TableName() string { return "video_views" }
