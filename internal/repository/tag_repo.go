package repository

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepo interface {
	ListTags(ctx context.Context) ([]*model.Tag, error)
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

func (s *tagRepoImpl) ListTags(ctx context.Context) ([]*model.Tag, error) {
	tags := make([]*model.Tag, 0)
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// getOrCreateTags 在事务内按 slug 查找或创建标签
func getOrCreateTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		slug := util.Slugify(name)
		if slug == "" {
			continue
		}
		tag := model.Tag{}
		err := tx.Where(model.Tag{Slug: slug}).
			Attrs(model.Tag{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
