package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagSvc  service.TagService
	postSvc service.PostService
}

func NewTagHandler(tagSvc service.TagService, postSvc service.PostService) *TagHandler {
	return &TagHandler{tagSvc: tagSvc, postSvc: postSvc}
}

func (s *TagHandler) ListTags(c *gin.Context) {
	tags, err := s.tagSvc.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}

func (s *TagHandler) ListTagPosts(c *gin.Context) {
	var pageDTO dto.PageDTO
	if err := c.ShouldBindQuery(&pageDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&pageDTO); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	posts, err := s.postSvc.ListByTag(c.Request.Context(), c.Param("slug"), pageDTO.Page, pageDTO.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
