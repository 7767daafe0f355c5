package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/ratelimit"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// SecurePostService 帖子的受控读写
// 每个操作依次经过权限、限流、校验与清洗，成功后写审计日志，任一步失败则不产生写入
type SecurePostService interface {
	GetPost(ctx context.Context, postID, userID string) (*model.Post, error)
	CreatePost(ctx context.Context, userID string, req *dto.CreatePostDTO) (*model.Post, error)
	UpdatePost(ctx context.Context, postID, userID string, req *dto.UpdatePostDTO) (*model.Post, error)
	PublishPost(ctx context.Context, postID, userID string) (*model.Post, error)
	ArchivePost(ctx context.Context, postID, userID string) (*model.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
}

type securePostServiceImpl struct {
	postRepo      repository.PostRepo
	permissionSvc PermissionService
	auditLogger   AuditLogger
	limiter       ratelimit.Limiter
	policies      ratelimit.Policies
	now           func() time.Time
}

func NewSecurePostService(
	postRepo repository.PostRepo,
	permissionSvc PermissionService,
	auditLogger AuditLogger,
	limiter ratelimit.Limiter,
	policies ratelimit.Policies,
) SecurePostService {
	return &securePostServiceImpl{
		postRepo:      postRepo,
		permissionSvc: permissionSvc,
		auditLogger:   auditLogger,
		limiter:       limiter,
		policies:      policies,
		now:           time.Now,
	}
}

// GetPost 匿名读取不限流也不审计
func (s *securePostServiceImpl) GetPost(ctx context.Context, postID, userID string) (*model.Post, error) {
	ok, err := s.permissionSvc.CanReadPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	if userID != "" && s.isLimited(ctx, userID, ratelimit.ActionReadPost) {
		return nil, ErrRateLimited
	}

	post, err := s.postRepo.FindPostDetail(ctx, postID)
	if err != nil {
		return nil, persistenceErr("find post detail", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if userID != "" {
		s.auditLogger.LogAction(ctx, userID, model.AuditActionRead, model.AuditResourcePost, postID, nil)
	}
	return post, nil
}

func (s *securePostServiceImpl) CreatePost(ctx context.Context, userID string, req *dto.CreatePostDTO) (*model.Post, error) {
	if s.isLimited(ctx, userID, ratelimit.ActionCreatePost) {
		return nil, ErrRateLimited
	}

	result := security.ValidatePost(security.PostFields{Title: &req.Title, Content: &req.Content})
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	title := security.SanitizeContent(req.Title)
	content := security.SanitizeContent(req.Content)
	var excerpt *string
	if req.Excerpt != nil {
		excerpt = util.PtrString(security.SanitizeContent(*req.Excerpt))
	}

	id := uuid.NewString()
	derived := req.Slug == ""
	slug := util.Slugify(req.Slug)
	if derived {
		slug = util.Slugify(title)
	}
	if slug == "" {
		if !derived {
			return nil, ErrParamInvalid
		}
		slug = id[:8]
	}

	now := s.now()
	post := &model.Post{
		ID:        id,
		AuthorID:  userID,
		Title:     title,
		Slug:      slug,
		Content:   content,
		Excerpt:   excerpt,
		Status:    model.PostStatusDraft,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	tags := util.NormalizeTags(req.Tags)

	created, err := s.postRepo.InsertPost(ctx, post, tags)
	if errors.Is(err, repository.ErrDuplicateKey) && derived {
		// 由标题生成的 slug 冲突时追加 id 前缀
		post.Slug = slug + "-" + id[:8]
		created, err = s.postRepo.InsertPost(ctx, post, tags)
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrPostSlugExist
		}
		return nil, persistenceErr("insert post", err)
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionCreate, model.AuditResourcePost, created.ID,
		map[string]any{"title": created.Title})
	return created, nil
}

// UpdatePost 只校验本次提交的字段，写入以读取时的版本号为条件
func (s *securePostServiceImpl) UpdatePost(ctx context.Context, postID, userID string, req *dto.UpdatePostDTO) (*model.Post, error) {
	post, err := s.permissionSvc.EditablePost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrAccessDenied
	}

	if s.isLimited(ctx, userID, ratelimit.ActionUpdatePost) {
		return nil, ErrRateLimited
	}

	result := security.ValidatePostPatch(security.PostFields{Title: req.Title, Content: req.Content})
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	patch := &model.PostPatch{}
	if req.Title != nil {
		patch.Title = util.PtrString(security.SanitizeContent(*req.Title))
	}
	if req.Content != nil {
		patch.Content = util.PtrString(security.SanitizeContent(*req.Content))
	}
	if req.Excerpt != nil {
		patch.Excerpt = util.PtrString(security.SanitizeContent(*req.Excerpt))
	}
	if req.Slug != nil {
		slug := util.Slugify(*req.Slug)
		if slug == "" {
			return nil, ErrParamInvalid
		}
		patch.Slug = &slug
	}

	fields := patch.Fields()
	if len(fields) == 0 {
		return post, nil
	}

	updated, err := s.applyPatch(ctx, postID, patch, post.Version)
	if err != nil {
		return nil, err
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionUpdate, model.AuditResourcePost, postID,
		map[string]any{"fields": fields})
	return updated, nil
}

// PublishPost 先检查发布资格，再检查编辑权限
func (s *securePostServiceImpl) PublishPost(ctx context.Context, postID, userID string) (*model.Post, error) {
	ok, err := s.permissionSvc.CanPublish(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientPermissions
	}

	post, err := s.permissionSvc.EditablePost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrAccessDenied
	}

	status := model.PostStatusPublished
	publishedAt := s.now()
	updated, err := s.applyPatch(ctx, postID, &model.PostPatch{Status: &status, PublishedAt: &publishedAt}, post.Version)
	if err != nil {
		return nil, err
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionPublish, model.AuditResourcePost, postID, nil)
	return updated, nil
}

// ArchivePost 作者或版主可归档，已归档时直接返回
func (s *securePostServiceImpl) ArchivePost(ctx context.Context, postID, userID string) (*model.Post, error) {
	post, err := s.authorOrModerator(ctx, postID, userID, true)
	if err != nil {
		return nil, err
	}
	if post.Status == model.PostStatusArchived {
		return post, nil
	}

	status := model.PostStatusArchived
	updated, err := s.applyPatch(ctx, postID, &model.PostPatch{Status: &status}, post.Version)
	if err != nil {
		return nil, err
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionArchive, model.AuditResourcePost, postID,
		map[string]any{"previous_status": post.Status})
	return updated, nil
}

// DeletePost 作者只能删除未发布的帖子，版主不受限制
func (s *securePostServiceImpl) DeletePost(ctx context.Context, postID, userID string) error {
	post, err := s.authorOrModerator(ctx, postID, userID, false)
	if err != nil {
		return err
	}

	if err = s.postRepo.DeletePost(ctx, postID, post.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return ErrPostConflict
		}
		return persistenceErr("delete post", err)
	}

	s.auditLogger.LogAction(ctx, userID, model.AuditActionDelete, model.AuditResourcePost, postID,
		map[string]any{"title": post.Title})
	return nil
}

func (s *securePostServiceImpl) authorOrModerator(ctx context.Context, postID, userID string, authorMayTouchPublished bool) (*model.Post, error) {
	post, err := s.postRepo.FindPost(ctx, postID)
	if err != nil {
		return nil, persistenceErr("find post", err)
	}
	if post == nil {
		return nil, ErrAccessDenied
	}
	if userID != "" && post.AuthorID == userID && (authorMayTouchPublished || !post.IsPublished()) {
		return post, nil
	}

	ok, err := s.permissionSvc.CanModerate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}
	return post, nil
}

func (s *securePostServiceImpl) applyPatch(ctx context.Context, postID string, patch *model.PostPatch, version int) (*model.Post, error) {
	updated, err := s.postRepo.UpdatePost(ctx, postID, patch, version)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, ErrPostConflict
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrPostSlugExist
		}
		return nil, persistenceErr("update post", err)
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	return updated, nil
}

func (s *securePostServiceImpl) isLimited(ctx context.Context, userID, action string) bool {
	policy := s.policies.For(action)
	if s.limiter.IsLimited(ctx, userID, action, policy.Limit, policy.Window) {
		log.WarnContext(ctx, "rate limit exceeded", "user_id", userID, "action", action)
		return true
	}
	return false
}
