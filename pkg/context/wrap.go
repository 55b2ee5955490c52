package context

import (
	"Tribune/pkg/log"
	"Tribune/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID    = "user_id"
	CtxRequestID = "request_id"
)

type HandlerFunc func(*gin.Context) error

// Wrap 统一错误出口：BizError 按业务码返回，其余错误一律 500
func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			log.L.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString(CtxRequestID)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: 500,
				Msg:  "服务暂不可用",
			})
		}
	}
}

func GetUserID(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, response.ErrUnauthorized
	}

	uid, ok := v.(uint64)
	if !ok || uid == 0 {
		return 0, response.NewError(http.StatusUnauthorized, "user_id 类型错误")
	}

	return uid, nil
}
