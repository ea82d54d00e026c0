package api

import (
	"github.com/gin-gonic/gin"

	internalapi "promptpilot_server/internal/api"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *internalapi.APIHandler) {

	// --- Project Lifecycle ---
	// Everything under /project and /projects requires a caller identity.
	authed := router.Group("/", internalapi.RequireUser())
	{
		authed.GET("/projects", h.ListProjects)

		projectGroup := authed.Group("/project")
		{
			projectGroup.POST("/generate", h.GenerateProject) // Generate a new project from a prompt
			projectGroup.GET("/:id", h.GetProject)
			projectGroup.DELETE("/:id", h.DeleteProject)

			projectGroup.GET("/:id/files", h.GetProjectFiles)
			projectGroup.POST("/:id/files", h.CreateProjectFile)
			projectGroup.PUT("/:id/files/:fileId", h.UpdateProjectFile)
			projectGroup.DELETE("/:id/files/:fileId", h.DeleteProjectFile)

			projectGroup.POST("/:id/chat", h.ChatWithProject) // Revision chat against one file
			projectGroup.GET("/:id/conversations", h.GetConversations)

			projectGroup.GET("/:id/build", h.BuildProject) // SSE build progress stream
		}
	}

	// --- Settings ---
	// Key validation is stateless and needs no caller identity.
	settingsGroup := router.Group("/settings")
	{
		settingsGroup.POST("/api-key/validate", h.ValidateAPIKey)
		settingsGroup.POST("/api-key/test", h.TestAPIKey)
	}

	// --- Simple Health Check ---
	router.GET("/health", h.Health)
}
