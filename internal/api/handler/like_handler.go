package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeSvc service.LikeService
}

func NewLikeHandler(likeSvc service.LikeService) *LikeHandler {
	return &LikeHandler{likeSvc: likeSvc}
}

func (s *LikeHandler) ToggleLike(c *gin.Context) {
	liked, err := s.likeSvc.ToggleLike(c.Request.Context(), c.Param("post_id"), c.GetString(consts.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LikeStateDTO{Liked: liked})
}

func (s *LikeHandler) GetLikeState(c *gin.Context) {
	liked, err := s.likeSvc.HasLiked(c.Request.Context(), c.Param("post_id"), c.GetString(consts.UserIDKey))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LikeStateDTO{Liked: liked})
}
