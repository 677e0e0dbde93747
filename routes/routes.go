package routes

import (
	"conference-management-api/controllers"
	"conference-management-api/middleware"
	"conference-management-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Conference Management API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Papers
			papers := protected.Group("/papers")
			{
				// Editors see all papers, authors their own
				papers.GET("", controllers.GetPapers)
				papers.GET("/:id", controllers.GetPaper)

				// Review assignments are editor-only
				papers.GET("/:id/assignments", middleware.RequireRole(models.RoleEditor), controllers.GetPaperAssignments)

				// Decision pipeline. Authorization is re-checked inside the
				// service; the route-level gate only keeps obvious
				// non-editors out early.
				papers.GET("/:id/decision", controllers.GetDecision)
				papers.POST("/:id/decision", middleware.RequireRole(models.RoleEditor), controllers.RecordDecision)
				papers.POST("/:id/decision/resend", middleware.RequireRole(models.RoleEditor), controllers.ResendDecisionNotifications)
				papers.GET("/:id/notifications", middleware.RequireRole(models.RoleEditor), controllers.GetDecisionNotifications)
			}
		}
	}
}
