package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/inventory-service/internal/api/http"
	"github.com/spec-kit/inventory-service/internal/api/http/handlers"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/events"
	"github.com/spec-kit/inventory-service/internal/localstore"
	"github.com/spec-kit/inventory-service/internal/observability"
	"github.com/spec-kit/inventory-service/internal/persistence"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/service"
	"github.com/spec-kit/inventory-service/internal/storage"
	"github.com/spec-kit/inventory-service/internal/worker"
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

	store, healthChecks, cleanup := openStore(ctx, cfg, logger)
	defer cleanup()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	healthChecks["redis"] = redis.Ping

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	authService := service.NewAuthService(*cfg, store, redis.Client)
	teamService := service.NewTeamService(store)
	floorService := service.NewFloorService(store, store, dispatcher)
	assetService := service.NewAssetService(store, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), store)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, healthChecks),
		Auth:           handlers.NewAuthHandler(authService),
		Teams:          handlers.NewTeamsHandler(teamService),
		Floors:         handlers.NewFloorsHandler(floorService),
		Assets:         handlers.NewAssetsHandler(assetService),
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

// openStore selects the persistence backend once, per configuration, and
// returns the unified store with its health checks and cleanup.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, map[string]handlers.HealthCheck, func()) {
	checks := map[string]handlers.HealthCheck{}

	switch cfg.Storage.Backend {
	case config.BackendBolt:
		local, err := localstore.Open(cfg.Storage.BoltPath)
		if err != nil {
			logger.Fatal("failed to open local store", zap.Error(err))
		}
		logger.Info("using local store backend", zap.String("path", cfg.Storage.BoltPath))
		return local, checks, func() { _ = local.Close() }

	default:
		pg := persistence.NewPostgres(cfg.Postgres, logger)
		pool, err := pg.Connect(ctx)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.InitSchema {
			if err := persistence.InitializeSchema(ctx, pool, logger); err != nil {
				logger.Fatal("failed to initialize schema", zap.Error(err))
			}
		}
		checks["postgres"] = pg.Ping
		return repository.NewStore(pool), checks, pg.Close
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
