package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/fxtrack/fxtrack/internal/clients/exchangerate"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/core/services"
	"github.com/fxtrack/fxtrack/internal/handlers"
	"github.com/fxtrack/fxtrack/internal/middleware"
	"github.com/fxtrack/fxtrack/internal/repositories/database/pgsql"
	"github.com/fxtrack/fxtrack/internal/repositories/database/sqlite"
	"github.com/fxtrack/fxtrack/pkg/config"
	"github.com/fxtrack/fxtrack/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title FXTrack Backend API
// @version 1.0
// @description Currency conversion tracking backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Local record store (single-file SQLite); runs its own embedded
	// migrations on open.
	recordStore, err := sqlite.NewRecordStore(cfg.RecordDBPath)
	if err != nil {
		logger.Error("Failed to open record store", slog.String("error", err.Error()), slog.String("path", cfg.RecordDBPath))
		os.Exit(1)
	}
	defer recordStore.Close()
	logger.Info("Record store opened.", slog.String("path", cfg.RecordDBPath))

	servicesContainer := buildServices(cfg, dbPool, recordStore)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the frontend origin)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, servicesContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires the repositories, clients and services together.
func buildServices(cfg *config.Config, dbPool *pgxpool.Pool, recordStore *sqlite.RecordStore) *portssvc.ServiceContainer {
	userRepo := pgsql.NewUserRepository(dbPool)
	userService := services.NewUserService(userRepo)
	tokenService := services.NewTokenService(cfg, userService)
	oauthService := services.NewGoogleOAuthHandlerService(cfg)

	rateClient := exchangerate.New(cfg.RateAPIBaseURL, cfg.RateAPIKey)
	rateService := services.NewRateService(rateClient, cfg.RateCacheTTL)
	recordService := services.NewRecordService(recordStore, rateService)
	reportingService := services.NewReportingService(recordStore)

	return &portssvc.ServiceContainer{
		User:        userService,
		Token:       tokenService,
		GoogleOAuth: oauthService,
		Record:      recordService,
		Rate:        rateService,
		Reporting:   reportingService,
	}
}

// runMigrations applies the pending postgres migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		migrationDB.Close()
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		m.Close()
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
