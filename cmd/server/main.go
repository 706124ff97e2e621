package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpcapi "roofbox-backend/internal/api/grpc"
	httpapi "roofbox-backend/internal/api/http"
	"roofbox-backend/internal/config"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository/postgres"
	"roofbox-backend/internal/security"
	"roofbox-backend/internal/service"
	"roofbox-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", false, "Apply the database schema before serving")
	flag.Parse()

	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Roofbox Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "grpc_port", cfg.Server.GRPCPort)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Mail configuration", "provider", cfg.Mail.Provider, "to", cfg.Mail.To)

	// Initialize Database
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

	// Initialize Repositories
	store := postgres.NewStore(db)
	if *migrate {
		if err := store.Migrate(context.Background()); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Info("Database schema applied")
	}

	// Initialize Storage
	images, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir, cfg.Storage.MaxFileSize<<20)
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Initialize Mail
	mailer, err := service.NewMailer(cfg.Mail)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}
	notificationSvc := service.NewNotificationService(mailer, cfg.Mail.From, cfg.Mail.FromName, cfg.Mail.To, cfg.MailTimeout())
	notifier := service.NewAsyncNotifier(notificationSvc)

	// Initialize Services
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)
	authSvc := service.NewAuthService(store.UserRepository, store.SessionRepository, tokenManager, cfg.AccessTokenTTL())
	bookingSvc := service.NewBookingService(store.ProductRepository, store.RentalRequestRepository, notifier, cfg.Location())
	contactSvc := service.NewContactService(store.ContactMessageRepository, notifier)
	productSvc := service.NewProductService(store.ProductRepository)
	adminSvc := service.NewAdminService(store.ProductRepository, store.RentalRequestRepository, store.ContactMessageRepository, images)

	router := httpapi.NewRouter(httpapi.Deps{
		Notifications:  notificationSvc,
		Bookings:       bookingSvc,
		Contacts:       contactSvc,
		Products:       productSvc,
		Admin:          adminSvc,
		Auth:           authSvc,
		Images:         images,
		RateLimit:      cfg.RateLimit,
		MaxUploadBytes: cfg.Storage.MaxFileSize << 20,
		Ping:           store.Ping,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up gRPC health server
	var grpcSrv *grpcapi.Server
	if cfg.Server.GRPCPort > 0 {
		lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
		if err != nil {
			logger.Error("Failed to listen", "error", err, "address", cfg.GetGRPCAddress())
			log.Fatalf("Failed to listen: %v", err)
		}
		grpcSrv = grpcapi.NewServer(store)
		go grpcSrv.WatchDatabase(ctx, 15*time.Second)
		go func() {
			logger.Info("gRPC health server listening", "address", cfg.GetGRPCAddress())
			if err := grpcSrv.Serve(lis); err != nil {
				logger.Error("gRPC server error", "error", err)
			}
		}()
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	if grpcSrv != nil {
		grpcSrv.Shutdown()
	}

	// Let in-flight notification emails finish
	notifier.Wait()
	logger.Info("Server stopped")
}
