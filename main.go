package main

import (
	"expirytracker/api"
	"expirytracker/config"
	"expirytracker/db"
	_ "expirytracker/docs" // Import for side effect: registers swagger spec via init()
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware
)

// @title           Expiry Tracker API
// @version         1.0.0

// @description     ## Expiry Tracker API
// @description
// @description     **Purpose:** Tracks expiry dates of personal and employee documents (Emirates ID, Visa, Driving License, Passport, Car Insurance, Tenancy Contract) for a single local user. All data lives in one JSON file on disk; there is no login and no cloud.
// @description
// @description     **High-Level Overview:**
// @description     *   Save personal profiles ("Self", family members) with per-document expiry dates and reminder thresholds.
// @description     *   Save company employees the same way, for a small-business HR view.
// @description     *   Every document is classified as OK, NEAR EXPIRY (within 30 days), or EXPIRED.
// @description     *   Overview tables show each person's soonest-expiring document, sorted soonest first.
// @description     *   Analytics tallies statuses across the whole store and maps a weighted risk score to a qualitative level.
// @description     *   The reminder preview simulates which reminders would fire in a chosen window, without storing or delivering anything.
// @description
// @description     Profile and company summaries are also downloadable as PDF (`?format=pdf`).
// @description
// @description     Dates use the `YYYY-MM-DD` format. Invalid dates never fail a save: the offending field is skipped and reported in the response's errors list.

// @host      localhost:8080
// @BasePath  /
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL: Failed to load configuration: %v", err)
	}

	// --- Data Store ---
	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize data store: %v", err)
	}

	// --- Gin Router Setup ---
	router := gin.Default()

	// Simple logging middleware (can be customized)
	router.Use(gin.Logger())
	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())

	// Profile Routes
	profileGroup := router.Group("/profiles")
	{
		// POST /profiles
		profileGroup.POST("", func(c *gin.Context) {
			api.SaveProfileHandler(c, database, cfg)
		})
		// GET /profiles (overview table)
		profileGroup.GET("", func(c *gin.Context) {
			api.ProfilesOverviewHandler(c, database, cfg)
		})
		// GET /profiles/{name}/summary
		profileGroup.GET("/:name/summary", func(c *gin.Context) {
			api.ProfileSummaryHandler(c, database, cfg)
		})
	}

	// Company Routes
	companyGroup := router.Group("/companies")
	{
		// POST /companies/{company}/employees
		companyGroup.POST("/:company/employees", func(c *gin.Context) {
			api.SaveEmployeeHandler(c, database, cfg)
		})
		// GET /companies/{company}/employees (employee table)
		companyGroup.GET("/:company/employees", func(c *gin.Context) {
			api.EmployeeTableHandler(c, database, cfg)
		})
		// GET /companies/{company}/summary
		companyGroup.GET("/:company/summary", func(c *gin.Context) {
			api.CompanySummaryHandler(c, database, cfg)
		})
	}

	// Report Routes
	// GET /analytics
	router.GET("/analytics", func(c *gin.Context) {
		api.AnalyticsHandler(c, database, cfg)
	})
	// GET /reminders/preview
	router.GET("/reminders/preview", func(c *gin.Context) {
		api.ReminderPreviewHandler(c, database, cfg)
	})

	// --- Swagger Route ---
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- Start Server ---
	listenAddr := fmt.Sprintf("%s:%s", cfg.ListenAddress, cfg.ListenPort)
	log.Printf("INFO: Starting server on %s", listenAddr)

	// Use http.Server for graceful shutdown options if needed later
	server := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("CRITICAL: Server failed to start: %v", err)
	}
}
