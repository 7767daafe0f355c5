package repository

import (
	"Inkwell/internal/model"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostRepo interface {
	FindPost(ctx context.Context, id string) (*model.Post, error)
	FindPostDetail(ctx context.Context, id string) (*model.Post, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*model.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*model.Post, error)
	ListPublishedByTag(ctx context.Context, tagSlug string, limit, offset int) ([]*model.Post, error)
	ListByAuthor(ctx context.Context, authorID string, includeDrafts bool, limit, offset int) ([]*model.Post, error)
	InsertPost(ctx context.Context, post *model.Post, tagNames []string) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, patch *model.PostPatch, expectedVersion int) (*model.Post, error)
	DeletePost(ctx context.Context, id string, expectedVersion int) error
	IncrementReadCount(ctx context.Context, id string) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// FindPost 只查询帖子本身，不存在时返回 nil, nil
func (s *PostRepoImpl) FindPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find post")
	}
	return &post, nil
}

func (s *PostRepoImpl) FindPostDetail(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find post detail")
	}
	return &post, nil
}

// FindPublishedBySlug 带评论树的已发布帖子
func (s *PostRepoImpl) FindPublishedBySlug(ctx context.Context, slug string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("parent_id IS NULL").Order("created_at ASC")
		}).
		Preload("Comments.Author").
		Preload("Comments.Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Replies.Author").
		Where("slug = ? AND status = ?", slug, model.PostStatusPublished).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find post by slug")
	}
	return &post, nil
}

func (s *PostRepoImpl) ListPublished(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("status = ?", model.PostStatusPublished).
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list published posts")
	}
	return posts, nil
}

func (s *PostRepoImpl) ListPublishedByTag(ctx context.Context, tagSlug string, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.slug = ? AND posts.status = ?", tagSlug, model.PostStatusPublished).
		Order("posts.published_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list posts by tag")
	}
	return posts, nil
}

func (s *PostRepoImpl) ListByAuthor(ctx context.Context, authorID string, includeDrafts bool, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := s.db.WithContext(ctx).
		Preload("Tags").
		Where("author_id = ?", authorID)
	if !includeDrafts {
		query = query.Where("status = ?", model.PostStatusPublished)
	}
	err := query.
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list posts by author")
	}
	return posts, nil
}

// InsertPost 在同一事务内写入帖子与标签关联
func (s *PostRepoImpl) InsertPost(ctx context.Context, post *model.Post, tagNames []string) (*model.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := getOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		if err = tx.Omit("Author", "Tags", "Comments").Create(post).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		links := make([]model.PostTag, 0, len(tags))
		for _, tag := range tags {
			links = append(links, model.PostTag{PostID: post.ID, TagID: tag.ID})
		}
		if err = tx.Create(&links).Error; err != nil {
			return err
		}
		post.Tags = tags
		return nil
	})
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateKey
		}
		return nil, errors.Wrap(err, "insert post")
	}
	return post, nil
}

// UpdatePost 条件更新：仅当版本号仍为 expectedVersion 时写入，并将版本号加一
// 帖子已被删除时返回 nil, nil
func (s *PostRepoImpl) UpdatePost(ctx context.Context, id string, patch *model.PostPatch, expectedVersion int) (*model.Post, error) {
	updates := map[string]any{
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Slug != nil {
		updates["slug"] = *patch.Slug
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.Excerpt != nil {
		updates["excerpt"] = *patch.Excerpt
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.PublishedAt != nil {
		updates["published_at"] = *patch.PublishedAt
	}

	var updated *model.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Post{}).
			Where("id = ? AND version = ?", id, expectedVersion).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return nil
			}
			return ErrVersionConflict
		}

		var post model.Post
		if err := tx.Preload("Tags").Where("id = ?", id).First(&post).Error; err != nil {
			return err
		}
		updated = &post
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return nil, ErrVersionConflict
		}
		if isDuplicateKey(err) {
			return nil, ErrDuplicateKey
		}
		return nil, errors.Wrap(err, "update post")
	}
	return updated, nil
}

// DeletePost 删除帖子及其标签关联、评论与点赞
func (s *PostRepoImpl) DeletePost(ctx context.Context, id string, expectedVersion int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND version = ?", id, expectedVersion).Delete(&model.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&model.Like{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return ErrVersionConflict
		}
		return errors.Wrap(err, "delete post")
	}
	return nil
}

func (s *PostRepoImpl) IncrementReadCount(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("read_count", gorm.Expr("read_count + 1")).Error
}
