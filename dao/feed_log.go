package dao

import (
	"Tribune/models"
	"context"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type FeedLogDAO struct {
	Repo[models.FeedRecommendationLog]
}

func NewFeedLogDAO(db *gorm.DB) *FeedLogDAO {
	return &FeedLogDAO{Repo: NewRepo[models.FeedRecommendationLog](db)}
}

// ServedVideoIDs 同一轮翻页（generation 相同）已经下发过的视频
func (d *FeedLogDAO) ServedVideoIDs(ctx context.Context, userID uint64, generation int64) (map[uint64]struct{}, error) {
	var pages []string
	err := d.Model(ctx).
		Where("user_id = ? AND generation = ?", userID, generation).
		Pluck("video_ids", &pages).Error
	if err != nil {
		return nil, err
	}

	served := make(map[uint64]struct{})
	for _, page := range pages {
		for _, id := range gjson.Parse(page).Array() {
			served[id.Uint()] = struct{}{}
		}
	}
	return served, nil
}
