package models

import (
	"time"

	"gorm.io/datatypes"
)

// FeedRecommendationLog 每次推荐请求的落库记录，用于排查推荐效果
type FeedRecommendationLog struct {
	ID              uint64         `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	UserID          uint64         `gorm:"column:user_id;not null;index:idx_feed_log_user,priority:1" json:"user_id"`
	Generation      int64          `gorm:"column:generation;not null;index:idx_feed_log_user,priority:2" json:"generation"`
	RequestLimit    int            `gorm:"column:request_limit;not null" json:"request_limit"`
	HasCursor       bool           `gorm:"column:has_cursor;not null" json:"has_cursor"`
	Reset           bool           `gorm:"column:reset;not null" json:"reset"`
	SourceCounts    datatypes.JSON `gorm:"column:source_counts" json:"source_counts"`
	DegradedSources datatypes.JSON `gorm:"column:degraded_sources" json:"degraded_sources"`
	VideoIDs        datatypes.JSON `gorm:"column:video_ids" json:"video_ids"`
	LatencyMs       int64          `gorm:"column:latency_ms;not null" json:"latency_ms"`
	CreatedAt       time.Time      `gorm:"column:created_at;index:idx_feed_log_created" json:"created_at"`
}

func (FeedRecommendationLog) TableName() string { return "feed_recommendation_logs" }
