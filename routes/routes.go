package routes

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/AvalonleFae/ezevent/config"
	"github.com/AvalonleFae/ezevent/database"
	"github.com/AvalonleFae/ezevent/internal/admin"
	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/auth"
	"github.com/AvalonleFae/ezevent/internal/catalog"
	"github.com/AvalonleFae/ezevent/internal/checkin"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/notification"
	"github.com/AvalonleFae/ezevent/internal/payment"
	"github.com/AvalonleFae/ezevent/internal/qrcode"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/internal/reports"
	"github.com/AvalonleFae/ezevent/internal/review"
	"github.com/AvalonleFae/ezevent/internal/upload"
	"github.com/AvalonleFae/ezevent/middleware"

	_ "github.com/AvalonleFae/ezevent/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func Setup(r *gin.Engine, cfg *config.Config) {
	if err := os.MkdirAll(config.UploadPath, 0755); err != nil {
		fmt.Printf("Warning: Could not create uploads directory: %v\n", err)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded posters and QR images are public.
	r.Static("/uploads", config.UploadPath)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter()) // Global rate limit: 100 req/min per IP

	// ========== Initialize Audit Log Module ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.GET("/public-roles", authHandler.GetPublicRoles)

		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
		authGroup.GET("/me", middleware.AuthMiddleware(cfg, authSvc), authHandler.Me)
		authGroup.POST("/fcm-token", middleware.AuthMiddleware(cfg, authSvc), authHandler.SaveFCMToken)
	}

	// ========== Catalog (public lookups) ==========
	catalogRepo := catalog.NewRepository(database.DB)
	catalogHandler := catalog.NewHandler(catalogRepo)

	catalogGroup := api.Group("/catalog")
	{
		catalogGroup.GET("/categories", catalogHandler.GetCategories)
		catalogGroup.GET("/universities", catalogHandler.GetUniversities)
		catalogGroup.GET("/faculties", catalogHandler.GetFaculties)
	}

	// ========== Events ==========
	uploadSvc := upload.NewService()
	qrRepo := qrcode.NewRepository(database.DB)
	qrSvc := qrcode.NewService(qrRepo)

	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, authSvc, qrSvc, auditSvc)
	eventHandler := event.NewHandler(eventSvc, uploadSvc)

	// Browsing the catalog of accepted events requires no login.
	api.GET("/events", eventHandler.ListPublic)
	api.GET("/events/:id", eventHandler.GetEvent)
	api.GET("/events/:id/availability", eventHandler.GetAvailability)

	// ========== Reviews (public read) ==========
	regRepo := registration.NewRepository(database.DB)
	reviewRepo := review.NewRepository(database.DB)
	reviewSvc := review.NewService(reviewRepo, regRepo, eventSvc, auditSvc)
	reviewHandler := review.NewHandler(reviewSvc)

	api.GET("/events/:id/reviews", reviewHandler.ListByEvent)
	api.GET("/events/:id/reviews/summary", reviewHandler.GetSummary)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Registrations ==========
	regSvc := registration.NewService(regRepo, eventSvc, auditSvc)
	regHandler := registration.NewHandler(regSvc)

	protected.POST("/events/:id/register", middleware.RBACMiddleware(middleware.RoleParticipant), regHandler.Register)
	protected.GET("/registrations/mine", regHandler.ListMine)
	protected.GET("/events/:id/registrations", middleware.RBACMiddleware(middleware.RoleOrganizer, middleware.RoleAdmin), regHandler.ListForEvent)

	protected.POST("/events/:id/reviews", middleware.RBACMiddleware(middleware.RoleParticipant), reviewHandler.CreateReview)

	// ========== Check-in ==========
	checkinSvc := checkin.NewService(qrSvc, regSvc, auditSvc)
	checkinHandler := checkin.NewHandler(checkinSvc)

	protected.POST("/checkin/scan", middleware.ScanRateLimiter(), checkinHandler.Scan)

	// ========== Payments ==========
	paymentRepo := payment.NewRepository(database.DB)
	paymentSvc := payment.NewService(paymentRepo, regRepo, eventSvc, cfg, auditSvc)
	paymentHandler := payment.NewHandler(paymentSvc)

	protected.POST("/registrations/:id/payments", middleware.RBACMiddleware(middleware.RoleParticipant), paymentHandler.StartPayment)
	protected.POST("/payments/verify", middleware.RBACMiddleware(middleware.RoleParticipant), paymentHandler.VerifyPayment)

	// ========== Notifications (in-app) ==========
	emailChannel := notification.NewEmailSender(cfg)
	pushChannel := notification.NewFCMChannel(cfg)
	notifRepo := notification.NewRepository(database.DB)
	notifSvc := notification.NewService(notifRepo, emailChannel, pushChannel, authRepo)
	notifHandler := notification.NewHandler(notifSvc)

	// Successful first check-ins drop a bell notification.
	checkinSvc.NotifSvc = notifSvc

	notifGroup := protected.Group("/notifications")
	{
		notifGroup.GET("/", notifHandler.ListInApp)
		notifGroup.PATCH("/:id/read", notifHandler.MarkRead)
		notifGroup.PATCH("/read-all", notifHandler.MarkAllRead)
	}

	// ========== Organizer Event Management ==========
	organizerRoutes := protected.Group("/")
	organizerRoutes.Use(middleware.RBACMiddleware(middleware.RoleOrganizer, middleware.RoleAdmin))
	{
		organizerRoutes.POST("/events", eventHandler.CreateEvent)
		organizerRoutes.PUT("/events/:id", eventHandler.UpdateEvent)
		organizerRoutes.GET("/events/mine", eventHandler.ListMine)
		organizerRoutes.PATCH("/events/:id/registration-open", eventHandler.ToggleRegistration)
		organizerRoutes.PATCH("/events/:id/review-open", eventHandler.ToggleReview)
		organizerRoutes.POST("/events/:id/poster", eventHandler.UploadPoster)
	}

	// ========== Reports ==========
	reportsRepo := reports.NewRepository(database.DB)
	reportsSvc := reports.NewService(reportsRepo, eventSvc, regRepo, qrSvc, reports.NewAttendeeExporter())
	reportsHandler := reports.NewHandler(reportsSvc)

	{
		organizerRoutes.GET("/reports/events/:id/kpis", reportsHandler.GetEventKPIs)
		organizerRoutes.GET("/reports/events/:id/attendees", reportsHandler.ExportAttendees)
	}
	protected.GET("/registrations/:id/ticket", reportsHandler.GetTicket)

	// ========== Admin ==========
	adminRepo := admin.NewRepository(database.DB)
	adminSvc := admin.NewService(adminRepo, eventRepo, auditSvc)
	adminHandler := admin.NewHandler(adminSvc)

	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(middleware.RBACMiddleware(middleware.RoleAdmin))
	{
		adminRoutes.GET("/organizers", adminHandler.ListOrganizers)
		adminRoutes.GET("/organizers/pending", adminHandler.ListPendingOrganizers)
		adminRoutes.PATCH("/organizers/:id/validation", adminHandler.ValidateOrganizer)
		adminRoutes.GET("/events/pending", adminHandler.ListPendingEvents)
		adminRoutes.PATCH("/events/:id/validation", adminHandler.ValidateEvent)
		adminRoutes.GET("/stats", adminHandler.GetStats)
		adminRoutes.GET("/analytics", adminHandler.GetAnalytics)

		adminRoutes.POST("/catalog/categories", catalogHandler.CreateCategory)
		adminRoutes.POST("/catalog/universities", catalogHandler.CreateUniversity)
		adminRoutes.POST("/catalog/faculties", catalogHandler.CreateFaculty)
	}

	// ========== Audit Logs (Admin Only) ==========
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RBACMiddleware(middleware.RoleAdmin))
	{
		auditRoutes.GET("/", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}
