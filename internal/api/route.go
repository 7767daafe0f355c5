package api

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.RequestMetaMiddleware())
	r.Use(middleware.RequestLogMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	logger.SetupGin(r, cfg.Logstash)

	auth := middleware.AuthMiddleware(group.TokenVerifier)
	authOpt := middleware.AuthOptionalMiddleware(group.TokenVerifier)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(authOpt)
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/slug/:slug", group.PostHandler.GetPostBySlug)
				authOptGroup.GET("/:post_id", group.PostHandler.GetPost)
				authOptGroup.GET("/:post_id/comments", group.CommentHandler.ListComments)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				authGroup.POST("/:post_id/publish", group.PostHandler.PublishPost)
				authGroup.POST("/:post_id/archive", group.PostHandler.ArchivePost)
				authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)

				authGroup.GET("/:post_id/like", group.LikeHandler.GetLikeState)
				authGroup.POST("/:post_id/like", group.LikeHandler.ToggleLike)
				authGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		commentGroup.Use(auth)
		{
			commentGroup.PUT("/:comment_id", group.CommentHandler.UpdateComment)
			commentGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
		}

		tagGroup := apiGroup.Group("/tags")
		{
			tagGroup.GET("", group.TagHandler.ListTags)
			tagGroup.GET("/:slug/posts", group.TagHandler.ListTagPosts)
		}

		profilesGroup := apiGroup.Group("/profiles")
		{
			profilesGroup.GET("/:username", group.ProfileHandler.GetProfile)
			profilesGroup.GET("/:username/available", group.ProfileHandler.CheckUsername)
		}

		profileGroup := apiGroup.Group("/profile")
		profileGroup.Use(auth)
		{
			profileGroup.GET("", group.ProfileHandler.GetCurrentProfile)
			profileGroup.PUT("", group.ProfileHandler.UpdateProfile)
		}

		// 版主权限在服务层校验
		auditGroup := apiGroup.Group("/audit-logs")
		auditGroup.Use(auth)
		{
			auditGroup.GET("", group.AuditLogHandler.ListAuditLogs)
		}
	}

	return r
}
