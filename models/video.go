package models

import "time"

const (
	TargetProposal = "proposal"
	TargetProgram  = "program"
	TargetVideo    = "video"
	TargetComment  = "comment"
)

// Video 视频表，由上传方写入，推荐流只读
type Video struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	OwnerUserID     uint64    `gorm:"column:owner_user_id;not null;index:idx_video_owner" json:"owner_user_id"`
	TargetType      string    `gorm:"column:target_type;type:varchar(16);not null;index:idx_video_target,priority:1" json:"target_type"`
	TargetID        uint64    `gorm:"column:target_id;not null;index:idx_video_target,priority:2" json:"target_id"`
	StorageBucket   string    `gorm:"column:storage_bucket;type:varchar(128);not null" json:"storage_bucket"`
	StorageKey      string    `gorm:"column:storage_key;type:varchar(512);not null" json:"storage_key"`
	ContentType     string    `gorm:"column:content_type;type:varchar(64);not null" json:"content_type"`
	DurationSeconds *int      `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;index:idx_video_created;index:idx_video_target,priority:3" json:"created_at"`
}

func (Video) TableName() string { return "videos" }

// IsContentTarget 视频只能挂在提案或纲领下
func IsContentTarget(targetType string) bool {
	return targetType == TargetProposal || targetType == TargetProgram
}
