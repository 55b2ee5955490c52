package service

import (
	"Tribune/config"
	"Tribune/dao"
	"Tribune/pkg/cursor"
	"Tribune/pkg/log"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(
	NewCursorCodec,

	wire.Bind(new(ViewLedger), new(*dao.VideoViewDAO)),

	NewAffinitySource,
	NewPopularitySource,
	NewEngagementSource,
	NewFeedSources,

	wire.Struct(new(BookmarkIndex), "*"),
	wire.Struct(new(VideoAssembler), "*"),

	NewFeedService,
	wire.Bind(new(IFeedService), new(*FeedService)),

	wire.Struct(new(VideoService), "*"),
	wire.Bind(new(IVideoService), new(*VideoService)),

	wire.Struct(new(BookmarkService), "*"),
	wire.Bind(new(IBookmarkService), new(*BookmarkService)),
)

// NewCursorCodec 游标编解码器，盐来自配置
func NewCursorCodec(conf *config.Config) *cursor.Codec {
	codec, err := cursor.NewCodec(conf.Feed.CursorSalt)
	if err != nil {
		log.L.Fatal("init cursor codec", zap.Error(err))
	}
	return codec
}
