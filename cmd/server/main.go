package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "segurauto-backend/internal/api/http"
	"segurauto-backend/internal/cache"
	"segurauto-backend/internal/config"
	"segurauto-backend/internal/decoder"
	"segurauto-backend/internal/logger"
	"segurauto-backend/internal/payment"
	"segurauto-backend/internal/repository/postgres"
	"segurauto-backend/internal/security"
	"segurauto-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SegurAuto Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Auth configuration", "mode", cfg.Auth.Mode)

	// Initialize Database
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

	// Initialize Cache
	redisCache := cache.New(cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
	defer redisCache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisCache.HealthCheck(ctx); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		log.Fatalf("Failed to ping redis: %v", err)
	}
	if err := redisCache.MirrorTierCatalog(ctx, 0); err != nil {
		logger.Warn("Failed to mirror tier catalog", "error", err)
	}
	cancel()
	logger.Info("Redis connection established")

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTokenExpiryMins)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenExpiryMins)*time.Minute,
	)
	var firebaseVerifier *security.FirebaseVerifier
	if cfg.Auth.Mode == "firebase" {
		firebaseVerifier, err = security.NewFirebaseVerifier(context.Background(), cfg.Auth.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase verifier", "error", err)
			log.Fatalf("Failed to initialize firebase verifier: %v", err)
		}
	}

	// Initialize Collaborators
	vinDecoder := decoder.NewVPICDecoder(cfg.Decoder.BaseURL, cfg.Decoder.Timeout, redisCache, cfg.Decoder.CacheTTL)
	paymentProcessor := payment.NewSimulatedProcessor(cfg.Payment.SimulatedDelay)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	userSvc := service.NewUserService(store.UserRepository)
	quoteSvc := service.NewQuoteService(store.PolicyRepository, vinDecoder, redisCache)
	policySvc := service.NewPolicyService(store.PolicyRepository, store.VehicleRepository, store.UserRepository, vinDecoder, paymentProcessor, emailSvc)
	claimSvc := service.NewClaimService(store.ClaimRepository, store.PolicyRepository, store.UserRepository, emailSvc)

	// Initialize HTTP layer
	validate := httpapi.NewValidator()
	handlers := httpapi.Handlers{
		Auth:   httpapi.NewAuthHandler(authSvc, validate),
		User:   httpapi.NewUserHandler(userSvc, validate),
		Quote:  httpapi.NewQuoteHandler(quoteSvc, validate),
		Policy: httpapi.NewPolicyHandler(policySvc, validate),
		Claim:  httpapi.NewClaimHandler(claimSvc, validate),
	}
	authMW := httpapi.NewAuthMiddleware(cfg.Auth.Mode, tokenManager, firebaseVerifier, store.UserRepository)
	router := httpapi.NewRouter(handlers, authMW)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("HTTP server failed", "error", err)
		log.Fatalf("HTTP server failed: %v", err)
	}
}
