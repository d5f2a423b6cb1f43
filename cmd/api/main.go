package main

import (
	"log"
	"os"

	"cpms-admin-api/config"
	"cpms-admin-api/controllers"
	"cpms-admin-api/middleware"
	"cpms-admin-api/monitor"
	"cpms-admin-api/routes"
	"cpms-admin-api/scheduler"
	"cpms-admin-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize logging and database
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}
	config.InitDB()

	// Build the reminder job once so manual and scheduled triggers share
	// the same ledger, then start the daily scheduler.
	reminderJob := services.NewReminderJobService(nil, nil)
	controllers.SetReminderJob(reminderJob)

	daily := scheduler.New(reminderJob)
	daily.Start()
	defer daily.Stop()

	log.Println("Deadline notification system started")

	// Optional startup sample so operators can eyeball the mail format
	if sampleTo := os.Getenv("SMTP_SAMPLE_TO"); sampleTo != "" {
		go reminderJob.SendSampleReminder(sampleTo)
	}

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Monitor page and token-gated log tail
	monitor.RegisterMonitorPage(router)
	monitor.RegisterLogsRoute(router)

	// Setup routes
	routes.SetupRoutes(router)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
