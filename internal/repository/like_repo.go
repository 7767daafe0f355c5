package repository

import (
	"Inkwell/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type LikeRepo interface {
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
	ReconcileLikeCounts(ctx context.Context) (int64, error)
}

type LikeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &LikeRepoImpl{db: db}
}

// ToggleLike 点赞与取消点赞，like_count 在同一事务内同步
func (s *LikeRepoImpl) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	liked := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.Like{})
		if result.Error != nil {
			return result.Error
		}
		delta := -1
		if result.RowsAffected == 0 {
			like := &model.Like{PostID: postID, UserID: userID, CreatedAt: time.Now()}
			if err := tx.Create(like).Error; err != nil {
				return err
			}
			liked = true
			delta = 1
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("GREATEST(like_count + ?, 0)", delta)).Error
	})
	if err != nil {
		return false, errors.Wrap(err, "toggle like")
	}
	return liked, nil
}

func (s *LikeRepoImpl) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check like")
	}
	return count > 0, nil
}

// ReconcileLikeCounts 按 likes 表重算 like_count，返回被修正的帖子数
func (s *LikeRepoImpl) ReconcileLikeCounts(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Exec(`
UPDATE posts p
JOIN (
	SELECT posts.id, COUNT(likes.user_id) AS cnt
	FROM posts LEFT JOIN likes ON likes.post_id = posts.id
	GROUP BY posts.id
) c ON c.id = p.id
SET p.like_count = c.cnt
WHERE p.like_count <> c.cnt`)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "reconcile like counts")
	}
	return result.RowsAffected, nil
}
