package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "homehub-backend/internal/api/http"
	"homehub-backend/internal/config"
	"homehub-backend/internal/logger"
	"homehub-backend/internal/repository/postgres"
	"homehub-backend/internal/security"
	"homehub-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting HomeHub backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	emailSvc := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	invitationSvc := service.NewInvitationService(
		store.InvitationRepository,
		store.FamilyRepository,
		store.MembershipRepository,
		store.UserRepository,
		store.NotificationRepository,
		emailSvc,
		cfg.Invitations.ExpiryDays,
	)
	familySvc := service.NewFamilyService(store.FamilyRepository, store.MembershipRepository)
	userSvc := service.NewUserService(store.UserRepository, store.FamilyRepository, store.MembershipRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	pantrySvc := service.NewPantryService(store.PantryRepository, store.MembershipRepository)
	shoppingSvc := service.NewShoppingService(store.ShoppingRepository, store.MembershipRepository)

	handlers := httpapi.NewHandlers(invitationSvc, familySvc, userSvc, noteSvc, pantrySvc, shoppingSvc)
	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
