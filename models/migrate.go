package models

// All 需要自动迁移的表
func All() []any {
	return []any{
		&Video{},
		&Vote{},
		&Comment{},
		&VideoView{},
		&VideoBookmark{},
		&FeedRecommendationLog{},
	}
}
