package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
)

// PostService 公开的帖子查询
type PostService interface {
	ListPublished(ctx context.Context, page, pageSize int) (*dto.ListDTO[*dto.PostSummaryDTO], error)
	GetBySlug(ctx context.Context, slug string) (*dto.PostDTO, error)
	ListByTag(ctx context.Context, tagSlug string, page, pageSize int) (*dto.ListDTO[*dto.PostSummaryDTO], error)
	ListByAuthor(ctx context.Context, authorID, viewerID string, page, pageSize int) (*dto.ListDTO[*dto.PostSummaryDTO], error)
	IncrementReadCount(ctx context.Context, postID string)
}

type postServiceImpl struct {
	postRepo repository.PostRepo
}

func NewPostService(postRepo repository.PostRepo) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
	}
}

func (s *postServiceImpl) ListPublished(ctx context.Context, page, pageSize int) (*dto.ListDTO[*dto.PostSummaryDTO], error) {
	page, pageSize = normalizePage(page, pageSize)
	posts, err := s.postRepo.ListPublished(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, persistenceErr("list published posts", err)
	}
	return &dto.ListDTO[*dto.PostSummaryDTO]{List: toPostSummaryDTOs(posts), Page: page, PageSize: pageSize}, nil
}

// GetBySlug 只返回已发布的帖子，并计入一次阅读
func (s *postServiceImpl) GetBySlug(ctx context.Context, slug string) (*dto.PostDTO, error) {
	post, err := s.postRepo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, persistenceErr("find post by slug", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	s.IncrementReadCount(ctx, post.ID)
	return ToPostDTO(post), nil
}

func (s *postServiceImpl) ListByTag(ctx context.Context, tagSlug string, page, pageSize int) (*dto.ListDTO[*dto.PostSummaryDTO], error) {
	page, pageSize = normalizePage(page, pageSize)
	posts, err := s.postRepo.ListPublishedByTag(ctx, tagSlug, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, persistenceErr("list posts by tag", err)
	}
	return &dto.ListDTO[*dto.PostSummaryDTO]{List: toPostSummaryDTOs(posts), Page: page, PageSize: pageSize}, nil
}

// ListByAuthor 作者本人可以看到自己的草稿与归档
func (s *postServiceImpl) ListByAuthor(ctx context.Context, authorID, viewerID string, page, pageSize int) (*dto.ListDTO[*dto.PostSummaryDTO], error) {
	page, pageSize = normalizePage(page, pageSize)
	includeDrafts := viewerID != "" && viewerID == authorID
	posts, err := s.postRepo.ListByAuthor(ctx, authorID, includeDrafts, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, persistenceErr("list posts by author", err)
	}
	return &dto.ListDTO[*dto.PostSummaryDTO]{List: toPostSummaryDTOs(posts), Page: page, PageSize: pageSize}, nil
}

// IncrementReadCount 阅读计数失败不影响读取
func (s *postServiceImpl) IncrementReadCount(ctx context.Context, postID string) {
	if err := s.postRepo.IncrementReadCount(ctx, postID); err != nil {
		log.WarnContext(ctx, "failed to increment read count", "post_id", postID, "err", err)
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}
	return page, pageSize
}
