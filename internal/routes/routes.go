package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/auth"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/handlers"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/middleware"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/models"
)

// RegisterRoutes wires every HTTP route. Middleware selection is part of
// the access model: the document route requires a token, the image route
// resolves one when present and lets anonymous requests through for
// public objects.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers, tokens *auth.TokenManager) {
	api := router.Group("/api/v1")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.AuthHandler.Register)
		authRoutes.POST("/login", h.AuthHandler.Login)
		authRoutes.POST("/refresh", h.AuthHandler.Refresh)
		authRoutes.POST("/logout", h.AuthHandler.Logout)
	}

	profiles := api.Group("/profiles")
	{
		profiles.GET("/institutions/:id", h.ProfileHandler.GetInstitution)

		me := profiles.Group("/me")
		me.Use(middleware.AuthMiddleware(tokens))
		{
			me.GET("", h.ProfileHandler.GetMine)
			me.PATCH("", h.ProfileHandler.UpdateMine)
		}
	}

	posts := api.Group("/posts")
	{
		posts.GET("", h.PostHandler.List)
		posts.GET("/:id", h.PostHandler.Get)

		institution := posts.Group("")
		institution.Use(middleware.AuthMiddleware(tokens), middleware.RequireRoles(models.UserRoleInstitution))
		{
			institution.POST("", h.PostHandler.Create)
			institution.PATCH("/:id", h.PostHandler.Update)
			institution.GET("/mine/list", h.PostHandler.ListMine)
			institution.GET("/:id/applications", h.ApplicationHandler.ListForPost)
		}
	}

	applications := api.Group("/applications")
	applications.Use(middleware.AuthMiddleware(tokens))
	{
		applications.POST("", middleware.RequireRoles(models.UserRoleApplicant), h.ApplicationHandler.Submit)
		applications.GET("", h.ApplicationHandler.ListMine)
		applications.GET("/:id", h.ApplicationHandler.Get)
		applications.PATCH("/:id/status", middleware.RequireRoles(models.UserRoleInstitution), h.ApplicationHandler.UpdateStatus)
		applications.POST("/:id/documents", middleware.RequireRoles(models.UserRoleApplicant), h.ApplicationHandler.UploadDocument)
	}

	documents := api.Group("/documents")
	documents.Use(middleware.AuthMiddleware(tokens), middleware.RequireRoles(models.UserRoleApplicant))
	{
		documents.POST("", h.DocumentHandler.Upload)
		documents.GET("", h.DocumentHandler.List)
		documents.DELETE("/:id", h.DocumentHandler.Delete)
	}

	chatRoutes := api.Group("/chat")
	chatRoutes.Use(middleware.AuthMiddleware(tokens))
	{
		chatRoutes.POST("/threads", h.ChatHandler.OpenThread)
		chatRoutes.GET("/threads", h.ChatHandler.ListThreads)
		chatRoutes.GET("/threads/:id/messages", h.ChatHandler.ListMessages)
		chatRoutes.POST("/threads/:id/messages", h.ChatHandler.SendMessage)
		chatRoutes.POST("/threads/:id/attachments", h.ChatHandler.SendAttachment)
	}

	files := api.Group("/files")
	{
		files.GET("/document", middleware.AuthMiddleware(tokens), h.FileHandler.ServeDocument)
		files.GET("/image", middleware.OptionalAuthMiddleware(tokens), h.FileHandler.ServeImage)
	}
}
