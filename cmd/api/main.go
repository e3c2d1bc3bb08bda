package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/cryptobloom/backend/internal/api/http"
	"github.com/cryptobloom/backend/internal/api/http/handlers"
	"github.com/cryptobloom/backend/internal/auth"
	"github.com/cryptobloom/backend/internal/config"
	"github.com/cryptobloom/backend/internal/events"
	"github.com/cryptobloom/backend/internal/observability"
	"github.com/cryptobloom/backend/internal/persistence"
	"github.com/cryptobloom/backend/internal/repository"
	"github.com/cryptobloom/backend/internal/service"
	"github.com/cryptobloom/backend/internal/worker"
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

	rds := persistence.NewRedis(cfg.Redis, logger)
	defer rds.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	flowerRepo := repository.NewFlowerRepository(pool)
	tradeRepo := repository.NewTradeRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	userService := service.NewUserService(userRepo)
	flowerService := service.NewFlowerService(flowerRepo)
	tradeService := service.NewTradeService(tradeRepo, userRepo, dispatcher)
	orderService := service.NewOrderService(orderRepo, flowerRepo, userRepo, dispatcher)
	analyticsService := service.NewAnalyticsService(tradeRepo, orderRepo, userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Email)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()
	var limiter *httptransport.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = httptransport.NewRateLimiter(rds.Client, logger, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), limiter)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, rds),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Flowers:        handlers.NewFlowersHandler(flowerService),
		Trades:         handlers.NewTradesHandler(tradeService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		Admin:          handlers.NewAdminHandler(userService, flowerService, orderService, metrics),
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
