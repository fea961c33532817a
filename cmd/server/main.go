package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	api "gearmarket-backend/internal/api/http"
	"gearmarket-backend/internal/config"
	"gearmarket-backend/internal/logger"
	"gearmarket-backend/internal/push"
	"gearmarket-backend/internal/repository/postgres"
	"gearmarket-backend/internal/security"
	"gearmarket-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GearMarket API server...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize security components
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Push delivery is optional in development; the notifier skips it when
	// the client is nil.
	pushClient, err := push.NewClient(context.Background(), cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Warn("Push notifications disabled", "error", err)
	}

	emailSender := service.NewSendGridEmailSender(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)

	// Initialize Services
	notifier := service.NewNotifier(
		store.NotificationRepository,
		store.DeviceTokenRepository,
		store.UserRepository,
		pushClient,
		emailSender,
	)

	reservationService := service.NewReservationService(
		store.ReservationRepository,
		store.RentalRepository,
		store.PurchaseRepository,
		store.ProductRepository,
		notifier,
	)

	offerService := service.NewOfferService(
		store.OfferRepository,
		store.ConversationRepository,
		store.MessageRepository,
		store.ProductRepository,
		store.AvailabilityRepository,
		reservationService,
		notifier,
		cfg.Offers.TTLDays,
	)

	rentalService := service.NewRentalService(
		store.RentalRepository,
		store.ProductRepository,
		store.AvailabilityRepository,
		reservationService,
		notifier,
	)

	purchaseService := service.NewPurchaseService(
		store.PurchaseRepository,
		store.ProductRepository,
		reservationService,
		notifier,
	)

	availabilityService := service.NewAvailabilityService(
		store.AvailabilityRepository,
		store.ProductRepository,
	)

	notificationService := service.NewNotificationService(
		store.NotificationRepository,
		store.DeviceTokenRepository,
	)

	// Initialize HTTP router
	router := api.NewRouter(api.RouterConfig{
		Tokens:        tokenManager,
		Offers:        offerService,
		Rentals:       rentalService,
		Purchases:     purchaseService,
		Reservations:  reservationService,
		Availability:  availabilityService,
		Notifications: notificationService,
	})

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
