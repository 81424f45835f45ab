package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"textscan/internal/auth"
	"textscan/internal/config"
	"textscan/internal/handler"
	"textscan/internal/matching"
	"textscan/internal/middleware"
	"textscan/internal/repository/postgres"
	"textscan/internal/service"
	"textscan/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier
	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer verifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	accountRepo := postgres.NewAccountRepository(repoConfig)
	documentRepo := postgres.NewDocumentRepository(repoConfig)
	requestRepo := postgres.NewCreditRequestRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create content store and scanner
	contentStore, err := storage.NewLocalStore(cfg.UploadDir, logger)
	if err != nil {
		log.Fatalf("Failed to create content store: %v", err)
	}
	scanner := matching.NewScanner(contentStore, logger)

	// Load credit replenishment policy
	policy, err := config.LoadCreditPolicy()
	if err != nil {
		log.Fatalf("Failed to load credit policy: %v", err)
	}

	// Create services
	scanService := service.NewScanService(accountRepo, documentRepo, contentStore, scanner, logger)
	creditService := service.NewCreditService(accountRepo, requestRepo, txManager, logger)

	// Schedule the daily credit reset
	resetJob := service.NewCreditResetJob(accountRepo, policy, logger)
	if err := resetJob.Start(); err != nil {
		log.Fatalf("Failed to start credit reset job: %v", err)
	}
	defer resetJob.Stop()

	// Create handlers
	scanHandler := handler.NewScanHandler(scanService, logger)
	creditHandler := handler.NewCreditHandler(creditService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", scanHandler.HealthCheck)

	// Scan routes
	mux.HandleFunc("POST /api/scan/upload", scanHandler.Upload)
	mux.HandleFunc("GET /api/documents/{id}", scanHandler.GetDocument)

	// Credit routes
	mux.HandleFunc("GET /api/credits/balance", creditHandler.GetBalance)
	mux.HandleFunc("POST /api/credits/request", creditHandler.RequestCredits)
	mux.HandleFunc("GET /api/credits/requests", creditHandler.ListPendingRequests)
	mux.HandleFunc("POST /api/credits/requests/{id}/approve", creditHandler.Approve)
	mux.HandleFunc("POST /api/credits/requests/{id}/deny", creditHandler.Deny)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	root = middleware.Auth(verifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
