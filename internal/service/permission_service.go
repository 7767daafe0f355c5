package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"
)

// PermissionService 读写权限判定
// 记录不存在时拒绝，查询失败时返回 PersistenceError
type PermissionService interface {
	CanReadPost(ctx context.Context, postID, userID string) (bool, error)
	CanEditPost(ctx context.Context, postID, userID string) (bool, error)
	CanPublish(ctx context.Context, userID string) (bool, error)
	CanModerate(ctx context.Context, userID string) (bool, error)
	EditablePost(ctx context.Context, postID, userID string) (*model.Post, error)
}

type permissionServiceImpl struct {
	postRepo    repository.PostRepo
	profileRepo repository.ProfileRepo
}

func NewPermissionService(postRepo repository.PostRepo, profileRepo repository.ProfileRepo) PermissionService {
	return &permissionServiceImpl{
		postRepo:    postRepo,
		profileRepo: profileRepo,
	}
}

// CanReadPost 已发布的帖子所有人可读，草稿与归档只有作者可读
func (s *permissionServiceImpl) CanReadPost(ctx context.Context, postID, userID string) (bool, error) {
	post, err := s.postRepo.FindPost(ctx, postID)
	if err != nil {
		return false, persistenceErr("find post", err)
	}
	if post == nil {
		return false, nil
	}
	if post.IsPublished() {
		return true, nil
	}
	return userID != "" && post.AuthorID == userID, nil
}

func (s *permissionServiceImpl) CanEditPost(ctx context.Context, postID, userID string) (bool, error) {
	post, err := s.EditablePost(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	return post != nil, nil
}

// EditablePost 返回可编辑时读到的帖子，调用方用其版本号做条件更新
func (s *permissionServiceImpl) EditablePost(ctx context.Context, postID, userID string) (*model.Post, error) {
	post, err := s.postRepo.FindPost(ctx, postID)
	if err != nil {
		return nil, persistenceErr("find post", err)
	}
	if post == nil || userID == "" || post.AuthorID != userID {
		return nil, nil
	}
	// 已发布的帖子不可直接编辑
	if post.IsPublished() {
		return nil, nil
	}
	return post, nil
}

func (s *permissionServiceImpl) CanPublish(ctx context.Context, userID string) (bool, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil || profile == nil {
		return false, err
	}
	return profile.CanPublishPosts(), nil
}

func (s *permissionServiceImpl) CanModerate(ctx context.Context, userID string) (bool, error) {
	profile, err := s.findProfile(ctx, userID)
	if err != nil || profile == nil {
		return false, err
	}
	return profile.CanModerate(), nil
}

func (s *permissionServiceImpl) findProfile(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, nil
	}
	profile, err := s.profileRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, persistenceErr("find profile", err)
	}
	return profile, nil
}
