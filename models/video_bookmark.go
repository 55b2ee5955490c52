package models

import "time"

// VideoBookmark 视频收藏
// 唯一键: user_id + video_id
type VideoBookmark struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_bookmark_user_video,priority:1;index:idx_bookmark_user_created,priority:1" json:"user_id"`
	VideoID   uint64    `gorm:"column:video_id;not null;uniqueIndex:uk_bookmark_user_video,priority:2" json:"video_id"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_bookmark_user_created,priority:2" json:"created_at"`
}

func (VideoBookmark) TableName() string { return "video_bookmarks" }
