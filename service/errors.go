package service

import (
	"errors"
	"fmt"
)

var (
	ErrVideoNotFound = errors.New("视频不存在")
	// ErrStoreUnavailable 数据库不可用，整个请求失败
	ErrStoreUnavailable = errors.New("store unavailable")
)

func storeUnavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
