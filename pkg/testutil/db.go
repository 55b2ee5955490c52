// Package testutil 测试用的 sqlite 数据库与造数工具
package testutil

import (
	"Tribune/config"
	"Tribune/models"
	"Tribune/pkg/database"
	"Tribune/pkg/snowflake"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB 每个测试独立的临时 sqlite 文件库，已建表
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tribune_test.db")
	db, err := database.Open(&config.Database{
		Driver:       config.DriverSQLite,
		Database:     fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path),
		MaxOpenConns: 1,
	}, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Now 测试统一使用的秒级 UTC 时间
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// CreateVideo 在 proposal 下创建一条视频，createdAt 为零值时取当前时间
func CreateVideo(t testing.TB, db *gorm.DB, ownerID uint64, createdAt time.Time) *models.Video {
	t.Helper()
	return CreateTargetVideo(t, db, ownerID, models.TargetProposal, 1, createdAt)
}

func CreateTargetVideo(t testing.TB, db *gorm.DB, ownerID uint64, targetType string, targetID uint64, createdAt time.Time) *models.Video {
	t.Helper()
	if createdAt.IsZero() {
		createdAt = Now()
	}
	id := snowflake.GenID()
	video := &models.Video{
		ID:            id,
		OwnerUserID:   ownerID,
		TargetType:    targetType,
		TargetID:      targetID,
		StorageBucket: "videos",
		StorageKey:    fmt.Sprintf("uploads/%d.mp4", id),
		ContentType:   "video/mp4",
		CreatedAt:     createdAt.UTC(),
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

// Vote 写入投票，value 为 1 或 -1
func Vote(t testing.TB, db *gorm.DB, userID uint64, targetType string, targetID uint64, value int8) {
	t.Helper()
	require.NoError(t, db.Create(&models.Vote{
		ID:         snowflake.GenID(),
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Value:      value,
	}).Error)
}

func Comment(t testing.TB, db *gorm.DB, authorID uint64, targetType string, targetID uint64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Comment{
		ID:           snowflake.GenID(),
		TargetType:   targetType,
		TargetID:     targetID,
		AuthorUserID: authorID,
		Body:         "测试评论",
	}).Error)
}

// View 直接写入观看记录
func View(t testing.TB, db *gorm.DB, userID, videoID uint64) {
	t.Helper()
	require.NoError(t, db.Create(&models.VideoView{UserID: userID, VideoID: videoID}).Error)
}

func Bookmark(t testing.TB, db *gorm.DB, userID, videoID uint64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.VideoBookmark{UserID: userID, VideoID: videoID, CreatedAt: createdAt.UTC()}).Error)
}

// CountViews 用户当前观看记录数
func CountViews(t testing.TB, db *gorm.DB, userID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.VideoView{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}
