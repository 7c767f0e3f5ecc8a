package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/claims-service/internal/api/http"
	"github.com/spec-kit/claims-service/internal/api/http/handlers"
	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/config"
	"github.com/spec-kit/claims-service/internal/events"
	"github.com/spec-kit/claims-service/internal/observability"
	"github.com/spec-kit/claims-service/internal/persistence"
	"github.com/spec-kit/claims-service/internal/repository"
	"github.com/spec-kit/claims-service/internal/service"
	"github.com/spec-kit/claims-service/internal/worker"
	"github.com/spec-kit/claims-service/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	policyRepo := repository.NewPolicyRepository(pool)
	claimRepo := repository.NewClaimRepository(pool)
	auditRepo := repository.NewClaimAuditRepository(pool)
	noteRepo := repository.NewClaimNoteRepository(pool)
	documentRepo := repository.NewClaimDocumentRepository(pool)

	if cfg.Seed.CreateTestUsers {
		if err := persistence.SeedTestUsers(ctx, pool, cfg.Seed.TestPassword, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed test users", zap.Error(err))
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	engine := workflow.NewEngine(userRepo)
	executor := workflow.NewExecutor(claimRepo, auditRepo, dispatcher)

	authService := service.NewAuthService(*cfg, userRepo)
	policyService := service.NewPolicyService(policyRepo)
	directoryService := service.NewDirectoryService(userRepo, redis.Client, logger)
	claimService := service.NewClaimService(service.ClaimDependencies{
		ClaimRepo:    claimRepo,
		PolicyRepo:   policyRepo,
		NoteRepo:     noteRepo,
		DocumentRepo: documentRepo,
		AuditRepo:    auditRepo,
		Engine:       engine,
		Executor:     executor,
		Dispatcher:   dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(authService, directoryService)
	policiesHandler := handlers.NewPoliciesHandler(policyService)
	claimsHandler := handlers.NewClaimsHandler(claimService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		Policies:       policiesHandler,
		Claims:         claimsHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
