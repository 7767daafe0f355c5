package service

import (
	"Inkwell/internal/pkg/ratelimit"
	"Inkwell/internal/repository"
	"context"
)

type LikeService interface {
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	HasLiked(ctx context.Context, postID, userID string) (bool, error)
}

type likeServiceImpl struct {
	likeRepo      repository.LikeRepo
	permissionSvc PermissionService
	limiter       ratelimit.Limiter
	policies      ratelimit.Policies
}

func NewLikeService(likeRepo repository.LikeRepo, permissionSvc PermissionService, limiter ratelimit.Limiter, policies ratelimit.Policies) LikeService {
	return &likeServiceImpl{
		likeRepo:      likeRepo,
		permissionSvc: permissionSvc,
		limiter:       limiter,
		policies:      policies,
	}
}

// ToggleLike 返回操作后的点赞状态
func (s *likeServiceImpl) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	ok, err := s.permissionSvc.CanReadPost(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrAccessDenied
	}

	policy := s.policies.For(ratelimit.ActionToggleLike)
	if s.limiter.IsLimited(ctx, userID, ratelimit.ActionToggleLike, policy.Limit, policy.Window) {
		return false, ErrRateLimited
	}

	liked, err := s.likeRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return false, persistenceErr("toggle like", err)
	}
	return liked, nil
}

func (s *likeServiceImpl) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	liked, err := s.likeRepo.HasLiked(ctx, postID, userID)
	if err != nil {
		return false, persistenceErr("check like", err)
	}
	return liked, nil
}
