package handler

import (
	"Tribune/config"
	"Tribune/middleware"
	"Tribune/pkg/context"
	"Tribune/pkg/response"
	"Tribune/service"
	"Tribune/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Video struct {
	Config          *config.Config
	VideoService    service.IVideoService
	BookmarkService service.IBookmarkService
	Limiter         *middleware.RateLimiter
}

// NewMarkViewedLimiter 标记已看的限流器
func NewMarkViewedLimiter(conf *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(conf.Feed.MarkViewedRate, conf.Feed.MarkViewedBurst)
}

func (h *Video) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	videos := r.Group("/v1/videos", authorize)
	videos.GET("/content", context.Wrap(h.ListContentVideos))                       // 提案/纲领下的视频
	videos.POST("/mark-viewed", h.Limiter.Middleware(), context.Wrap(h.MarkViewed)) // 标记已看
	videos.POST("/bookmark-toggle", context.Wrap(h.ToggleBookmark))                 // 收藏/取消收藏
	videos.GET("/bookmarks", context.Wrap(h.ListBookmarks))                         // 我的收藏
}

// ListContentVideos 单内容视频列表
func (h *Video) ListContentVideos(c *gin.Context) error {
	var req types.ContentVideosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	page, err := h.VideoService.ListContentVideos(c.Request.Context(), userID, req.TargetType, req.TargetID, req.Cursor, req.Limit)
	if err != nil {
		return toBizError(err)
	}

	response.Success(c, page)
	return nil
}

func (h *Video) MarkViewed(c *gin.Context) error {
	var req types.VideoActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "video_id参数错误")
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.VideoService.MarkViewed(c.Request.Context(), userID, req.VideoID); err != nil {
		return toBizError(err)
	}

	response.Success(c, nil)
	return nil
}

func (h *Video) ToggleBookmark(c *gin.Context) error {
	var req types.VideoActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "video_id参数错误")
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	bookmarked, err := h.BookmarkService.Toggle(c.Request.Context(), userID, req.VideoID)
	if err != nil {
		return toBizError(err)
	}

	response.Success(c, types.BookmarkToggleResponse{Bookmarked: bookmarked})
	return nil
}

func (h *Video) ListBookmarks(c *gin.Context) error {
	var req types.BookmarksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	page, err := h.BookmarkService.List(c.Request.Context(), userID, req.Cursor, req.Limit)
	if err != nil {
		return toBizError(err)
	}

	response.Success(c, page)
	return nil
}
