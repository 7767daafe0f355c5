package repository

import (
	"Inkwell/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ProfileRepo interface {
	FindProfile(ctx context.Context, id string) (*model.Profile, error)
	FindProfileByUsername(ctx context.Context, username string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, id string, patch *model.ProfilePatch) (*model.Profile, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

type ProfileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &ProfileRepoImpl{db: db}
}

// FindProfile 不存在时返回 nil, nil
func (s *ProfileRepoImpl) FindProfile(ctx context.Context, id string) (*model.Profile, error) {
	profile := &model.Profile{}
	result := s.db.WithContext(ctx).Where("id = ?", id).First(profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "find profile")
	}
	return profile, nil
}

// FindProfileByUsername 附带已发布的帖子
func (s *ProfileRepoImpl) FindProfileByUsername(ctx context.Context, username string) (*model.Profile, error) {
	profile := &model.Profile{}
	result := s.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", model.PostStatusPublished).Order("published_at DESC")
		}).
		Where("username = ?", username).
		First(profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "find profile by username")
	}
	return profile, nil
}

// UpdateProfile 只写展示字段，权限标记不经过这里
func (s *ProfileRepoImpl) UpdateProfile(ctx context.Context, id string, patch *model.ProfilePatch) (*model.Profile, error) {
	updates := map[string]any{}
	if patch.DisplayName != nil {
		updates["display_name"] = *patch.DisplayName
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, errors.Wrap(err, "update profile")
		}
	}
	return s.FindProfile(ctx, id)
}

func (s *ProfileRepoImpl) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Profile{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count username")
	}
	return count > 0, nil
}
