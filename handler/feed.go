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

type Feed struct {
	Config      *config.Config
	FeedService service.IFeedService
}

func (h *Feed) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	r.GET("/v1/feed", authorize, context.Wrap(h.ListFeed)) // 个性化推荐流
}

// ListFeed 推荐流，cursor 为空表示刷新
func (h *Feed) ListFeed(c *gin.Context) error {
	var req types.FeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}

	page, err := h.FeedService.ListFeed(c.Request.Context(), userID, req.Cursor, req.Limit)
	if err != nil {
		return toBizError(err)
	}

	response.Success(c, page)
	return nil
}
