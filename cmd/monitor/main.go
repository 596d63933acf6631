package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/lcibils/monitor-neuratek/internal/api/http"
	"github.com/lcibils/monitor-neuratek/internal/api/http/handlers"
	"github.com/lcibils/monitor-neuratek/internal/config"
	"github.com/lcibils/monitor-neuratek/internal/events"
	"github.com/lcibils/monitor-neuratek/internal/observability"
	"github.com/lcibils/monitor-neuratek/internal/persistence"
	"github.com/lcibils/monitor-neuratek/internal/repository"
	"github.com/lcibils/monitor-neuratek/internal/service"
	"github.com/lcibils/monitor-neuratek/internal/sla"
	"github.com/lcibils/monitor-neuratek/internal/tracker"
	"github.com/lcibils/monitor-neuratek/internal/view"
	"github.com/lcibils/monitor-neuratek/internal/worker"
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

	slaFile, err := config.LoadSLAFile(cfg.Monitor.SLAFile)
	if err != nil {
		logger.Fatal("failed to load SLA config", zap.Error(err))
	}
	customers := slaFile.CustomerConfigs()
	styles := view.NewStyles(slaFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	holidays := sla.NewHolidayCalendar(time.Now())
	calendar := sla.NewBusinessCalendar(holidays)
	engine := sla.NewDeadlineEngine(calendar, slaFile.General.EstimateCategory)

	evaluations := service.NewEvaluationService(service.EvaluationDependencies{
		Source:     tracker.NewClient(cfg.Redmine, logger),
		Cache:      repository.NewSnapshotCache(redis.Client, cfg.Monitor.CacheTTL()),
		Breaches:   repository.NewBreachRepository(pg.PoolHandle()),
		Engine:     engine,
		Customers:  customers,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
		WorkerPool: cfg.Monitor.WorkerPool,
	})

	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications)

	refresh := worker.NewRefreshWorker(evaluations, cfg.Monitor.RefreshSpec, cfg.App.RequestTimeout(), logger)
	if err := refresh.Start(ctx); err != nil {
		logger.Fatal("failed to start refresh worker", zap.Error(err))
	}
	defer refresh.Stop()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	dashboardHandler := handlers.NewDashboardHandler(evaluations, customers, styles)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    healthHandler,
		Dashboard: dashboardHandler,
		Metrics:   metrics,
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
