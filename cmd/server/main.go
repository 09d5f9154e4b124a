package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http"
	"github.com/aheinzel/account-intercompany-booking-button/internal/adapter/http/handler"
	postgresRepo "github.com/aheinzel/account-intercompany-booking-button/internal/adapter/repository/postgres"
	redisRepo "github.com/aheinzel/account-intercompany-booking-button/internal/adapter/repository/redis"
	"github.com/aheinzel/account-intercompany-booking-button/internal/infrastructure/config"
	"github.com/aheinzel/account-intercompany-booking-button/internal/infrastructure/logger"
	"github.com/aheinzel/account-intercompany-booking-button/internal/infrastructure/metrics"
	"github.com/aheinzel/account-intercompany-booking-button/internal/infrastructure/postgres"
	"github.com/aheinzel/account-intercompany-booking-button/internal/infrastructure/redis"
	"github.com/aheinzel/account-intercompany-booking-button/internal/usecase"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	templates, err := config.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load booking templates")
	}

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	bankLineRepo := postgresRepo.NewBankLineRepository(pool)
	companyRepo := postgresRepo.NewCompanyRepository(pool)
	directoryRepo := postgresRepo.NewDirectoryRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	scenarioRepo := postgresRepo.NewScenarioRepository(pool)
	attachmentRepo := postgresRepo.NewAttachmentRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	reconciliationRepo := postgresRepo.NewRetryingReconciliationService(
		postgresRepo.NewReconciliationRepository(pool),
		postgresRepo.NewRetrier(appLogger),
	)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cachedScenarios := redisRepo.NewScenarioCache(scenarioRepo, redisClient, cfg.ScenarioCacheTTL)
	idGen := postgresRepo.NewULIDGenerator()

	resolver := usecase.NewResolver(companyRepo, directoryRepo, cfg.ResolverSettings(templates))

	var offset usecase.OffsetCoordinator
	switch cfg.OffsetStrategy {
	case "mirror":
		offset = usecase.NewMirrorCoordinator(directoryRepo, ledgerRepo, reconciliationRepo, idGen, cfg.ClearingAccountCode, appLogger)
	case "propose":
		offset = usecase.NewProposeCoordinator(directoryRepo, ledgerRepo, reconciliationRepo, appLogger)
	default:
		offset = usecase.NewNoopCoordinator()
	}
	log.Info().Str("strategy", offset.Name()).Msg("offset strategy selected")

	// Initialize use cases
	bookingUC := usecase.NewBookingUseCase(
		txManager, bankLineRepo, ledgerRepo, cachedScenarios, attachmentRepo, auditRepo,
		resolver, offset, idGen, appLogger, appMetrics,
		usecase.SignPolicySwap, cfg.QuickBookingEnabled,
	)
	bankLineUC := usecase.NewBankLineUseCase(bankLineRepo, cachedScenarios, ledgerRepo)
	scenarioUC := usecase.NewScenarioUseCase(cachedScenarios, auditRepo, idGen, appMetrics)

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingUC)
	bankLineHandler := handler.NewBankLineHandler(bankLineUC)
	scenarioHandler := handler.NewScenarioHandler(scenarioUC)
	auditHandler := handler.NewAuditHandler(auditRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		BookingHandler:   bookingHandler,
		BankLineHandler:  bankLineHandler,
		ScenarioHandler:  scenarioHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		Logger:           appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
