// main.go
package main

import (
	"log"
	"os"
	"time"

	"hackreg/database"
	"hackreg/handlers"
	"hackreg/middleware"
	"hackreg/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database and run migrations
	database.InitDB()
	database.RunMigrations()

	// Wire services and handlers
	handlers.Init(services.NewSMTPNotifier())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    12 * 1024 * 1024, // resumes up to 10MB plus multipart overhead
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, x-access-token",
		AllowCredentials: true,
	}))

	// API Routes
	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/verify", handlers.VerifyEmail)
	authGroup.Post("/verify/resend", middleware.AuthMiddleware, handlers.ResendVerification)
	authGroup.Post("/password/reset/request", handlers.RequestPasswordReset)
	authGroup.Post("/password/reset", handlers.ResetPassword)

	// Current user
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Get("/me/status", handlers.GetOwnStatus)
	userGroup.Get("/:id/profile", middleware.RecruiterMiddleware, handlers.GetUserProfile)
	userGroup.Get("/:id/resume", handlers.GetResumeURL)
	userGroup.Get("/:id/picture", handlers.GetProfilePictureURL)
	userGroup.Get("/:id/requests", handlers.ListUserRequests)

	// Profile routes
	profileGroup := api.Group("/profile")
	profileGroup.Use(middleware.AuthMiddleware)
	profileGroup.Get("/", handlers.GetOwnProfile)
	profileGroup.Put("/", handlers.SubmitProfile)
	profileGroup.Post("/confirm", handlers.ConfirmAttendance)
	profileGroup.Post("/decline", handlers.DeclineAttendance)
	profileGroup.Post("/resume", handlers.UploadResume)
	profileGroup.Post("/picture", handlers.UploadProfilePicture)

	// Team routes
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.AuthMiddleware)
	teamGroup.Post("/", handlers.CreateTeam)
	teamGroup.Get("/", handlers.ListTeams)
	teamGroup.Get("/mine", handlers.GetOwnTeam)
	teamGroup.Get("/requests", handlers.ListTeamRequests)
	teamGroup.Post("/leave", handlers.LeaveTeam)
	teamGroup.Post("/invite/:userId", handlers.InviteUser)
	teamGroup.Put("/promote/:userId", handlers.PromoteAdmin)
	teamGroup.Delete("/members/:userId", handlers.KickUser)
	teamGroup.Get("/:id", handlers.GetTeam)
	teamGroup.Put("/:id", handlers.UpdateTeam)
	teamGroup.Post("/:id/join", handlers.JoinTeam)

	// Team request lifecycle
	requestGroup := api.Group("/requests")
	requestGroup.Use(middleware.AuthMiddleware)
	requestGroup.Post("/:id/accept", handlers.AcceptRequest)
	requestGroup.Post("/:id/decline", handlers.DeclineRequest)
	requestGroup.Post("/:id/cancel", handlers.CancelRequest)

	// Leaderboard routes
	leaderboardGroup := api.Group("/leaderboard")
	leaderboardGroup.Get("/", handlers.GetLeaderboard)
	leaderboardGroup.Get("/rank", middleware.AuthMiddleware, handlers.GetOwnRank)
	leaderboardGroup.Use("/live", handlers.LiveUpgrade)
	leaderboardGroup.Get("/live", handlers.LiveLeaderboard)
	leaderboardGroup.Post("/recompute", middleware.AuthMiddleware, middleware.AdminMiddleware, handlers.RecomputeLeaderboard)

	// Participant directory
	participantGroup := api.Group("/participants")
	participantGroup.Use(middleware.AuthMiddleware)
	participantGroup.Get("/", handlers.ListParticipants)
	participantGroup.Get("/affiliated", middleware.AdminMiddleware, handlers.ListAffiliatedApplicants)

	// Check-in routes
	checkinGroup := api.Group("/checkin")
	checkinGroup.Use(middleware.AuthMiddleware)
	checkinGroup.Get("/items", handlers.ListCheckinItems)
	checkinGroup.Get("/history", handlers.CheckinHistory)
	checkinGroup.Get("/items/:id", handlers.GetCheckinItem)
	checkinGroup.Post("/items", middleware.AdminMiddleware, handlers.CreateCheckinItem)
	checkinGroup.Put("/items/:id", middleware.AdminMiddleware, handlers.UpdateCheckinItem)
	checkinGroup.Delete("/items/:id", middleware.AdminMiddleware, handlers.DeleteCheckinItem)
	checkinGroup.Post("/items/:id", handlers.SelfCheckIn)
	checkinGroup.Post("/items/:id/users/:userId", middleware.AdminMiddleware, handlers.AdminCheckIn)

	// Project and prize routes
	projectGroup := api.Group("/projects")
	projectGroup.Use(middleware.AuthMiddleware)
	projectGroup.Post("/", handlers.CreateProject)
	projectGroup.Get("/", handlers.ListProjects)
	projectGroup.Get("/:id", handlers.GetProject)
	projectGroup.Put("/:id", handlers.EditProject)
	projectGroup.Delete("/:id", handlers.DeleteProject)
	projectGroup.Post("/:id/prizes/:prizeId", handlers.EnterPrize)
	api.Get("/prizes", middleware.AuthMiddleware, handlers.ListPrizes)

	// Sponsor routes
	sponsorGroup := api.Group("/sponsors")
	sponsorGroup.Use(middleware.AuthMiddleware)
	sponsorGroup.Get("/", handlers.ListSponsors)
	sponsorGroup.Get("/:id", handlers.GetSponsor)
	sponsorGroup.Post("/", middleware.AdminMiddleware, handlers.CreateSponsor)
	sponsorGroup.Post("/recruiters", middleware.AdminMiddleware, handlers.MakeRecruiter)
	sponsorGroup.Delete("/recruiters/:userId", middleware.AdminMiddleware, handlers.RemoveRecruiter)

	// Event settings (read is open to any signed-in user)
	api.Get("/settings", middleware.AuthMiddleware, handlers.GetSettings)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware)
	adminGroup.Use(middleware.AdminMiddleware)
	adminGroup.Get("/users", handlers.ListUsers)
	adminGroup.Get("/users/search", handlers.SearchUsers)
	adminGroup.Get("/users/:id/status", handlers.GetUserStatus)
	adminGroup.Put("/users/:id/status", handlers.SetUserStatus)
	adminGroup.Get("/users/:id/team", handlers.GetUserTeam)
	adminGroup.Post("/users/:id/admit", handlers.AdmitUser)
	adminGroup.Post("/users/:id/reject", handlers.RejectUser)
	adminGroup.Post("/users/:id/waitlist", handlers.WaitlistUser)
	adminGroup.Put("/settings", handlers.UpdateSettings)
	adminGroup.Post("/test-accounts", handlers.CreateTestAccounts)
	adminGroup.Delete("/test-accounts", handlers.DeleteTestAccounts)

	// Signed file downloads (signature in the URL is the credential)
	api.Get("/files/:bucket/:key", handlers.DownloadFile)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("📧 SMTP configured: %v", os.Getenv("SMTP_HOST") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
		if os.Getenv("SMTP_HOST") == "" {
			log.Println("WARNING: SMTP_HOST not set, emails will only be logged")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
