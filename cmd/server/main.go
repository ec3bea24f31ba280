package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "locagest-backend/internal/api/http"
	"locagest-backend/internal/config"
	"locagest-backend/internal/lifecycle"
	"locagest-backend/internal/logger"
	"locagest-backend/internal/repository"
	fsrepo "locagest-backend/internal/repository/firestore"
	"locagest-backend/internal/repository/postgres"
	"locagest-backend/internal/security"
	"locagest-backend/internal/service"
)

// repositories is the backend-independent bundle the services are wired
// from. closeFn releases whichever backend was opened.
type repositories struct {
	clients     repository.ClientRepository
	equipment   repository.EquipmentRepository
	rentals     repository.RentalRepository
	receivables repository.ReceivableRepository
	notes       repository.NotificationRepository
	closeFn     func() error
}

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting LocaGest backend...", "log_level", cfg.Log.Level, "address", cfg.GetServerAddress())

	repos, err := buildRepositories(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err)
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}
	defer repos.closeFn()

	// Services
	clock := lifecycle.SystemClock()
	engine := lifecycle.NewEngine(clock)
	emailSvc, err := service.NewEmailServiceFromConfig(cfg)
	if err != nil {
		logger.Warn("Email provider not configured, finalization notices disabled", "error", err)
	}
	rentalSvc := service.NewRentalService(repos.rentals, repos.clients, repos.equipment, repos.receivables, repos.notes, emailSvc, engine, clock)
	clientSvc := service.NewClientService(repos.clients, repos.rentals)
	equipmentSvc := service.NewEquipmentService(repos.equipment, repos.rentals)
	revenueSvc := service.NewRevenueService(repos.equipment, repos.rentals, repos.clients)
	notificationSvc := service.NewNotificationService(repos.notes)
	receiptSvc := service.NewReceiptService(repos.rentals, repos.clients, repos.equipment, repos.receivables, clock)

	// HTTP API
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)
	router := httpapi.NewRouter(
		httpapi.NewClientHandler(clientSvc),
		httpapi.NewEquipmentHandler(equipmentSvc),
		httpapi.NewRentalHandler(rentalSvc, receiptSvc),
		httpapi.NewReportHandler(revenueSvc),
		httpapi.NewNotificationHandler(notificationSvc),
		authMiddleware,
	)

	handler := httpapi.NewCORS(cfg)(router)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), handler); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}

func buildRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.Firestore.Enabled {
		logger.Info("Using Firestore backend", "project_id", cfg.Firestore.ProjectID)
		client, err := fsrepo.NewClient(context.Background(), cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, err
		}
		store := fsrepo.NewStore(client)
		return &repositories{
			clients:     store.ClientRepository,
			equipment:   store.EquipmentRepository,
			rentals:     store.RentalRepository,
			receivables: store.ReceivableRepository,
			notes:       store.NotificationRepository,
			closeFn:     client.Close,
		}, nil
	}

	logger.Info("Using PostgreSQL backend", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	store := postgres.NewStore(db)
	return &repositories{
		clients:     store.ClientRepository,
		equipment:   store.EquipmentRepository,
		rentals:     store.RentalRepository,
		receivables: store.ReceivableRepository,
		notes:       store.NotificationRepository,
		closeFn:     db.Close,
	}, nil
}
