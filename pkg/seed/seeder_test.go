package seed

import (
	"Tribune/dao"
	"Tribune/models"
	"Tribune/pkg/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Run(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := &Seeder{
		Videos:   dao.NewVideoDAO(db),
		Votes:    dao.NewVoteDAO(db),
		Comments: dao.NewCommentDAO(db),
	}

	stats, err := s.Run(context.Background(), Options{Users: 5, Videos: 12, Seed: 42, Within: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Videos)

	var videos []models.Video
	require.NoError(t, db.Find(&videos).Error)
	require.Len(t, videos, 12)
	for _, v := range videos {
		assert.True(t, models.IsContentTarget(v.TargetType))
		assert.WithinDuration(t, time.Now().UTC(), v.CreatedAt, time.Hour+time.Minute)
	}

	var votes int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&votes).Error)
	assert.EqualValues(t, stats.Votes, votes)

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, stats.Comments, comments)
}

func TestSeeder_RejectsEmpty(t *testing.T) {
	s := &Seeder{}
	_, err := s.Run(context.Background(), Options{})
	assert.Error(t, err)
}
