package routes

import (
	"cpms-admin-api/controllers"
	"cpms-admin-api/middleware"

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
					"message": "CPMS Admin API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Faculty profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Deadline reminder administration
			reminders := protected.Group("/reminders")
			{
				reminders.GET("/runs", controllers.GetReminderRuns)
				reminders.GET("/runs/:id", controllers.GetReminderRun)
				reminders.GET("/ledger", controllers.GetReminderLedger)
				reminders.POST("/run", controllers.TriggerReminderRun)
			}
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Route not found"})
	})
}
