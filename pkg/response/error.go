package response

import (
	"Tribune/pkg/log"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

var (
	ErrBadRequest   = NewError(http.StatusBadRequest, "参数错误")
	ErrUnauthorized = NewError(http.StatusUnauthorized, "未登录")
	ErrNotFound     = NewError(http.StatusNotFound, "资源不存在")
	ErrTooMany      = NewError(http.StatusTooManyRequests, "请求过于频繁")
)

// ErrorMiddleware 兜底 panic 和 c.Error 写入的错误
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
					Code: 500,
					Msg:  "系统异常",
				})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err

			var be *BizError
			if errors.As(err, &be) {
				Fail(c, be.Code, be.Msg)
			} else {
				Abort(c, http.StatusInternalServerError, "服务暂不可用")
			}
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
