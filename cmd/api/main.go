package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/turnkey-platform/turnkey-service/internal/api/http"
	"github.com/turnkey-platform/turnkey-service/internal/api/http/handlers"
	"github.com/turnkey-platform/turnkey-service/internal/auth"
	"github.com/turnkey-platform/turnkey-service/internal/config"
	"github.com/turnkey-platform/turnkey-service/internal/events"
	"github.com/turnkey-platform/turnkey-service/internal/mailer"
	"github.com/turnkey-platform/turnkey-service/internal/notify"
	"github.com/turnkey-platform/turnkey-service/internal/observability"
	"github.com/turnkey-platform/turnkey-service/internal/persistence"
	"github.com/turnkey-platform/turnkey-service/internal/repository"
	"github.com/turnkey-platform/turnkey-service/internal/service"
	"github.com/turnkey-platform/turnkey-service/internal/worker"
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

	var (
		pg         *persistence.Postgres
		userRepo   repository.UserRepository
		ticketRepo repository.TicketRepository
	)
	switch cfg.Store.Backend {
	case config.StorePostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.ApplyMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pg.PoolHandle())
		ticketRepo = repository.NewTicketRepository(pg.PoolHandle())
	default:
		userRepo = repository.NewMemoryUserRepository()
		ticketRepo = repository.NewMemoryTicketRepository()
	}

	if cfg.Store.SeedDemoData {
		if err := persistence.SeedDemoData(ctx, userRepo, ticketRepo, logger); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	rd := persistence.NewRedis(cfg.Redis, logger)
	defer rd.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()

	registryService, err := service.NewRegistryService(ctx, service.RegistryDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	if err != nil {
		logger.Fatal("failed to init registry", zap.Error(err))
	}
	ticketService, err := service.NewTicketService(ctx, service.TicketDependencies{
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	if err != nil {
		logger.Fatal("failed to init ticket store", zap.Error(err))
	}
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})

	center := notify.NewCenter(cfg.Notification.DisplayTTL())
	defer center.Close()

	var mail mailer.Mailer
	if rd != nil {
		mail = mailer.NewStreamMailer(rd.Client, cfg.Notification.OutboundStream, cfg.Notification.EmailFrom)
	} else {
		mail = mailer.NewLogMailer(logger, cfg.Notification.EmailFrom)
	}

	notificationService := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		UserRepo:   userRepo,
		Center:     center,
		Mailer:     mail,
	}, logger)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var pgPinger, redisPinger handlers.Pinger
	if pg != nil {
		pgPinger = pg
	}
	if rd != nil {
		redisPinger = rd
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pgPinger, redisPinger),
		Auth:           handlers.NewAuthHandler(registryService, tokenManager),
		Users:          handlers.NewUsersHandler(registryService),
		Tickets:        handlers.NewTicketsHandler(ticketService, assignmentService),
		Notifications:  handlers.NewNotificationsHandler(center),
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
