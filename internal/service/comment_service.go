package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/ratelimit"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"context"
	"time"

	"github.com/google/uuid"
)

type CommentService interface {
	ListComments(ctx context.Context, postID, userID string) ([]*dto.CommentDTO, error)
	CreateComment(ctx context.Context, postID, userID string, req *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, commentID, userID string, req *dto.UpdateCommentDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, commentID, userID string) error
}

type commentServiceImpl struct {
	commentRepo   repository.CommentRepo
	permissionSvc PermissionService
	auditLogger   AuditLogger
	limiter       ratelimit.Limiter
	policies      ratelimit.Policies
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	permissionSvc PermissionService,
	auditLogger AuditLogger,
	limiter ratelimit.Limiter,
	policies ratelimit.Policies,
) CommentService {
	return &commentServiceImpl{
		commentRepo:   commentRepo,
		permissionSvc: permissionSvc,
		auditLogger:   auditLogger,
		limiter:       limiter,
		policies:      policies,
	}
}

// ListComments 与帖子同样的可见性
func (s *commentServiceImpl) ListComments(ctx context.Context, postID, userID string) ([]*dto.CommentDTO, error) {
	ok, err := s.permissionSvc.CanReadPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, persistenceErr("list comments", err)
	}
	out := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentDTO(comment))
	}
	return out, nil
}

// CreateComment 回复只保留一层：回复一条回复时挂到其顶层评论下
func (s *commentServiceImpl) CreateComment(ctx context.Context, postID, userID string, req *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	ok, err := s.permissionSvc.CanReadPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	policy := s.policies.For(ratelimit.ActionCreateComment)
	if s.limiter.IsLimited(ctx, userID, ratelimit.ActionCreateComment, policy.Limit, policy.Window) {
		return nil, ErrRateLimited
	}

	result := security.ValidateComment(req.Content)
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	var parentID *string
	if req.ParentID != nil && *req.ParentID != "" {
		parent, err := s.commentRepo.FindComment(ctx, *req.ParentID)
		if err != nil {
			return nil, persistenceErr("find comment", err)
		}
		if parent == nil || parent.PostID != postID {
			return nil, ErrCommentParentInvalid
		}
		rootID := parent.ID
		if parent.ParentID != nil {
			rootID = *parent.ParentID
		}
		parentID = &rootID
	}

	now := time.Now()
	comment := &model.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  userID,
		ParentID:  parentID,
		Content:   security.SanitizeContent(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.commentRepo.InsertComment(ctx, comment); err != nil {
		return nil, persistenceErr("insert comment", err)
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionCreate, model.AuditResourceComment, comment.ID,
		map[string]any{"post_id": postID})
	return toCommentDTO(comment), nil
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, commentID, userID string, req *dto.UpdateCommentDTO) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.FindComment(ctx, commentID)
	if err != nil {
		return nil, persistenceErr("find comment", err)
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		return nil, ErrAccessDenied
	}

	result := security.ValidateComment(req.Content)
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	updated, err := s.commentRepo.UpdateCommentContent(ctx, commentID, security.SanitizeContent(req.Content))
	if err != nil {
		return nil, persistenceErr("update comment", err)
	}
	if updated == nil {
		return nil, ErrCommentNotFound
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionUpdate, model.AuditResourceComment, commentID, nil)
	return toCommentDTO(updated), nil
}

// DeleteComment 作者或版主可删除
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID, userID string) error {
	comment, err := s.commentRepo.FindComment(ctx, commentID)
	if err != nil {
		return persistenceErr("find comment", err)
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != userID {
		ok, err := s.permissionSvc.CanModerate(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAccessDenied
		}
	}

	if err = s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		return persistenceErr("delete comment", err)
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionDelete, model.AuditResourceComment, commentID,
		map[string]any{"post_id": comment.PostID, "author_id": comment.AuthorID})
	return nil
}
