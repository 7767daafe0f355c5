package repository

import (
	"Inkwell/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepo interface {
	FindComment(ctx context.Context, id string) (*model.Comment, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	InsertComment(ctx context.Context, comment *model.Comment) error
	UpdateCommentContent(ctx context.Context, id string, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) FindComment(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find comment")
	}
	return &comment, nil
}

// ListCommentsByPost 一级评论及其回复，按时间正序
func (s *CommentRepoImpl) ListCommentsByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.Author").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	return comments, nil
}

func (s *CommentRepoImpl) InsertComment(ctx context.Context, comment *model.Comment) error {
	err := s.db.WithContext(ctx).Omit("Author", "Replies").Create(comment).Error
	if err != nil {
		return errors.Wrap(err, "insert comment")
	}
	return nil
}

func (s *CommentRepoImpl) UpdateCommentContent(ctx context.Context, id string, content string) (*model.Comment, error) {
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error
	if err != nil {
		return nil, errors.Wrap(err, "update comment")
	}
	return s.FindComment(ctx, id)
}

// DeleteComment 连同回复一起删除
func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).
		Where("id = ? OR parent_id = ?", id, id).
		Delete(&model.Comment{}).Error
	if err != nil {
		return errors.Wrap(err, "delete comment")
	}
	return nil
}
