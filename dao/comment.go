package dao

import (
	"Tribune/models"

	"gorm.io/gorm"
)

// CommentDAO 评论由评论模块维护，这里只用于造数
type CommentDAO struct {
	Repo[models.Comment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{Repo: NewRepo[models.Comment](db)}
}
