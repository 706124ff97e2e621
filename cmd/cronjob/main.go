package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"roofbox-backend/internal/config"
	"roofbox-backend/internal/jobs"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository/postgres"
	"roofbox-backend/internal/scheduler"
	"roofbox-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('pending-digest', 'purge-sessions', 'all')")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Roofbox Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	mailer, err := service.NewMailer(cfg.Mail)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}

	jobRunner := jobs.NewJobRunner(store.RentalRequestRepository, store.ContactMessageRepository, store.SessionRepository, mailer, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := runJobOnce(jobRunner, *runOnce); err != nil {
			log.Fatalf("Job %s failed: %v", *runOnce, err)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	cronScheduler.Stop()
	logger.Info("Cronjob runner stopped")
}

func runJobOnce(jr *jobs.JobRunner, name string) error {
	switch name {
	case "pending-digest":
		return jr.SendPendingDigest()
	case "purge-sessions":
		return jr.PurgeExpiredSessions()
	case "all":
		jr.RunAll()
		return nil
	default:
		logger.Error("Unknown job name", "job", name)
		log.Fatalf("Unknown job: %s. Valid options: pending-digest, purge-sessions, all", name)
	}
	return nil
}
