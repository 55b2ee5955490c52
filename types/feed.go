package types

import "time"

// FeedSource 召回来源
type FeedSource string

const (
	SourceAffinity   FeedSource = "affinity"
	SourcePopularity FeedSource = "popularity"
	SourceEngagement FeedSource = "engagement"
)

// FeedCandidate 单次请求内的召回候选，不落库
type FeedCandidate struct {
	VideoID uint64
	Source  FeedSource
	Score   int64
}

// Video 返回给客户端的视频
type Video struct {
	ID              uint64    `json:"id,string"`
	OwnerUserID     uint64    `json:"owner_user_id,string"`
	TargetType      string    `json:"target_type"`
	TargetID        uint64    `json:"target_id,string"`
	StorageBucket   string    `json:"storage_bucket"`
	StorageKey      string    `json:"storage_key"`
	ContentType     string    `json:"content_type"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	VoteScore       int64     `json:"vote_score"`
	Bookmarked      bool      `json:"bookmarked"`
	Source          string    `json:"source,omitempty"`
}

// VideoPage 统一的游标分页结构
type VideoPage struct {
	Items      []*Video `json:"items"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

type FeedRequest struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"`
}

type ContentVideosRequest struct {
	TargetType string `form:"target_type" binding:"required,oneof=proposal program"`
	TargetID   uint64 `form:"target_id" binding:"required"`
	Cursor     string `form:"cursor"`
	Limit      int    `form:"limit"`
}

type BookmarksRequest struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"`
}

type VideoActionRequest struct {
	VideoID uint64 `json:"video_id,string" binding:"required"`
}

type BookmarkToggleResponse struct {
	Bookmarked bool `json:"bookmarked"`
}
