package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/qrmenu-service/internal/api/http"
	"github.com/spec-kit/qrmenu-service/internal/api/http/handlers"
	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/billing"
	"github.com/spec-kit/qrmenu-service/internal/config"
	"github.com/spec-kit/qrmenu-service/internal/events"
	"github.com/spec-kit/qrmenu-service/internal/observability"
	"github.com/spec-kit/qrmenu-service/internal/persistence"
	"github.com/spec-kit/qrmenu-service/internal/pos"
	"github.com/spec-kit/qrmenu-service/internal/repository"
	"github.com/spec-kit/qrmenu-service/internal/service"
	"github.com/spec-kit/qrmenu-service/internal/worker"
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
	businessRepo := repository.NewBusinessRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	menuRepo := repository.NewMenuRepository(pool)
	tableRepo := repository.NewTableRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, businessRepo, logger)
	checkoutClient := billing.NewCheckoutClient(cfg.Billing)
	businessService := service.NewBusinessService(businessRepo, checkoutClient, dispatcher, logger)
	menuService := service.NewMenuService(menuRepo, tableRepo, cfg.App.PublicBaseURL)
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:    orderRepo,
		BusinessRepo: businessRepo,
		Resolver:     pos.NewResolver(&http.Client{}),
		Dispatcher:   dispatcher,
		UpsellCache:  service.NewRedisUpsellCache(redis.Client),
		Logger:       logger,
	})
	statsService := service.NewStatsService(statsRepo, redis.Client, logger)
	translateService := service.NewTranslateService(cfg.Translate)
	imageService := service.NewImageService(cfg.Images, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Printer)
	worker.StartNotificationWorker(notificationService)

	gate := auth.NewSuperAdminGate(authService.TokenManager(), cfg.Auth.SuperAdminEmail)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), gate, businessRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService, cfg.App),
		Admin:    handlers.NewAdminHandler(businessService),
		Menu:     handlers.NewMenuHandler(menuService, orderService),
		Tables:   handlers.NewTablesHandler(menuService),
		Orders:   handlers.NewOrdersHandler(orderService),
		POS:      handlers.NewPOSHandler(orderService),
		Billing:  handlers.NewBillingHandler(businessService),
		Contacts: handlers.NewContactsHandler(contactRepo),
		Stats:    handlers.NewStatsHandler(statsService),
		Content:  handlers.NewContentHandler(translateService, imageService),
		Public: handlers.NewPublicHandler(handlers.PublicDependencies{
			TableRepo:       tableRepo,
			BusinessRepo:    businessRepo,
			BusinessService: businessService,
			MenuService:     menuService,
			OrderService:    orderService,
			StatsService:    statsService,
		}),
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
