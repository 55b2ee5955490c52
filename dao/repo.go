package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 通用的单表读写
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Model(ctx context.Context) *gorm.DB {
	return r.Db.WithContext(ctx).Model(new(T))
}

// FindByID 按主键查询，不存在时返回 nil, nil
func (r *Repo[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	var items []*T
	if err := r.Db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}

// FindByIDs 批量按主键查询，返回顺序不保证
func (r *Repo[T]) FindByIDs(ctx context.Context, ids []uint64) ([]*T, error) {
	items := make([]*T, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	err := r.Db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) ([]*T, error) {
	var items []*T
	err := r.Db.WithContext(ctx).Where(where, args...).Find(&items).Error
	return items, err
}

// IsExist 是否存在满足条件的记录
func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var n int64
	err := r.Db.WithContext(ctx).Model(new(T)).Where(where, args...).Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *Repo[T]) Create(ctx context.Context, item *T) error {
	return r.Db.WithContext(ctx).Create(item).Error
}
