package handler

import (
	"Tribune/pkg/response"
	"Tribune/service"
	"errors"
	"net/http"
)

// toBizError 把 service 层的哨兵错误翻译成接口错误，其余原样返回由 Wrap 记 500
func toBizError(err error) error {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		return response.NewError(http.StatusNotFound, "视频不存在")
	default:
		return err
	}
}
