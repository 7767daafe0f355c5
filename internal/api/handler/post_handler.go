package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	securePostSvc service.SecurePostService
	postSvc       service.PostService
}

func NewPostHandler(securePostSvc service.SecurePostService, postSvc service.PostService) *PostHandler {
	return &PostHandler{
		securePostSvc: securePostSvc,
		postSvc:       postSvc,
	}
}

// ListPosts 已发布帖子列表，带 author_id 时查询该作者的帖子
func (s *PostHandler) ListPosts(c *gin.Context) {
	var pageDTO dto.PageDTO
	if err := c.ShouldBindQuery(&pageDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&pageDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	var (
		list *dto.ListDTO[*dto.PostSummaryDTO]
		err  error
	)
	if authorID := c.Query("author_id"); authorID != "" {
		list, err = s.postSvc.ListByAuthor(ctx, authorID, c.GetString(consts.UserIDKey), pageDTO.Page, pageDTO.PageSize)
	} else {
		list, err = s.postSvc.ListPublished(ctx, pageDTO.Page, pageDTO.PageSize)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *PostHandler) GetPostBySlug(c *gin.Context) {
	post, err := s.postSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("post_id")
	post, err := s.securePostSvc.GetPost(c.Request.Context(), postID, c.GetString(consts.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	s.postSvc.IncrementReadCount(c.Request.Context(), postID)
	response.Success(c, service.ToPostDTO(post))
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	post, err := s.securePostSvc.CreatePost(c.Request.Context(), c.GetString(consts.UserIDKey), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, service.ToPostDTO(post))
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	post, err := s.securePostSvc.UpdatePost(c.Request.Context(), c.Param("post_id"), c.GetString(consts.UserIDKey), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, service.ToPostDTO(post))
}

func (s *PostHandler) PublishPost(c *gin.Context) {
	post, err := s.securePostSvc.PublishPost(c.Request.Context(), c.Param("post_id"), c.GetString(consts.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, service.ToPostDTO(post))
}

func (s *PostHandler) ArchivePost(c *gin.Context) {
	post, err := s.securePostSvc.ArchivePost(c.Request.Context(), c.Param("post_id"), c.GetString(consts.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, service.ToPostDTO(post))
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	err := s.securePostSvc.DeletePost(c.Request.Context(), c.Param("post_id"), c.GetString(consts.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
