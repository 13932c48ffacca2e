package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/AvalonleFae/ezevent/config"
	"github.com/AvalonleFae/ezevent/database"
	"github.com/AvalonleFae/ezevent/internal/auditlog"
	"github.com/AvalonleFae/ezevent/internal/auth"
	"github.com/AvalonleFae/ezevent/internal/catalog"
	"github.com/AvalonleFae/ezevent/internal/event"
	"github.com/AvalonleFae/ezevent/internal/notification"
	"github.com/AvalonleFae/ezevent/internal/payment"
	"github.com/AvalonleFae/ezevent/internal/qrcode"
	"github.com/AvalonleFae/ezevent/internal/registration"
	"github.com/AvalonleFae/ezevent/internal/review"
	"github.com/AvalonleFae/ezevent/routes"
	"github.com/AvalonleFae/ezevent/utils"
)

// @title EzEvent API
// @version 1.0
// @description University event ticketing backend: event publishing, registration, QR check-in and organizer validation.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka
	utils.InitializeKafka(cfg)

	// Init Firebase
	if err := utils.InitFirebase(); err != nil {
		log.Printf("⚠️ Firebase initialization failed: %v", err)
		log.Println("ℹ️ Continuing without Firebase (push notifications will be disabled)")
	} else if utils.IsFCMEnabled() {
		log.Println("✅ Firebase and FCM initialized")
	} else {
		log.Println("⚠️ Firebase initialized but FCM client unavailable")
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&auth.OrganizerProfile{},
		&auth.ParticipantProfile{},
		&catalog.Category{},
		&catalog.University{},
		&catalog.Faculty{},
		&event.Event{},
		&qrcode.QRCode{},
		&registration.Registration{},
		&registration.Attendance{},
		&payment.Payment{},
		&review.Review{},
		&notification.NotificationLog{},
		&notification.InAppNotification{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed roles, bootstrap admin and catalog lookups
	if err := auth.SeedUserRoles(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}
	if err := auth.SeedAdminUser(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed admin: %v", err))
	}
	if err := catalog.NewRepository(db).SeedDefaults(context.Background()); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed catalog: %v", err))
	}

	// Kafka consumer: fans admin validation decisions out to
	// email, push and in-app notifications.
	authRepo := auth.NewRepository(db)
	notifRepo := notification.NewRepository(db)
	notifSvc := notification.NewService(notifRepo, notification.NewEmailSender(cfg), notification.NewFCMChannel(cfg), authRepo)
	consumer := notification.NewConsumer(utils.NewValidationReader(cfg), notifSvc)
	go consumer.Run(context.Background())

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routes.Setup(router, cfg)

	addr := ":" + cfg.Port
	log.Printf("🚀 EzEvent server listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
