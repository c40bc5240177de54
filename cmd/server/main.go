package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/facility-booking/internal/booking"
	"github.com/iliyamo/facility-booking/internal/config"
	"github.com/iliyamo/facility-booking/internal/database"
	"github.com/iliyamo/facility-booking/internal/handler"
	"github.com/iliyamo/facility-booking/internal/logging"
	"github.com/iliyamo/facility-booking/internal/middleware"
	"github.com/iliyamo/facility-booking/internal/queue"
	"github.com/iliyamo/facility-booking/internal/repository"
	"github.com/iliyamo/facility-booking/internal/router"
	"github.com/iliyamo/facility-booking/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("facility-booking", "INFO").Fatal(err)
	}
	logger := logging.New("facility-booking", cfg.LogLevel)

	db, err := database.Open(database.Options{
		User:         cfg.DBUser,
		Pass:         cfg.DBPass,
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		Name:         cfg.DBName,
		TLSCAPath:    cfg.DBTLSCA,
		LockWaitSecs: cfg.DBLockWaitSecs,
	})
	if err != nil {
		logger.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatalf("migrate: %v", err)
		}
		logger.Info("schema applied")
	}

	var pub booking.Publisher
	if cfg.EventsEnabled {
		async := service.NewAsyncPublisher(service.NewQueuePublisher(cfg.RabbitMQURL, logger), 256, 5*time.Second, logger)
		go async.Run(ctx)
		pub = async
		consumer := &queue.Consumer{URL: cfg.RabbitMQURL, LogPath: queue.DefaultLogPath, Logger: logger}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Errorf("reservation consumer stopped: %v", err)
			}
		}()
	}

	reservations := repository.NewReservationRepo(db)
	svc := booking.NewService(reservations, pub, logger, cfg.BookingTimeout)

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable; rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.Validator = handler.NewRequestValidator()

	router.Use(e, cfg.AllowedOrigins, router.Middleware{
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	})
	router.RegisterRoutes(e, db)
	router.RegisterCatalogue(e, &handler.CatalogueHandler{
		Companies:  repository.NewCompanyRepo(db),
		Facilities: repository.NewFacilityRepo(db),
		Users:      repository.NewUserRepo(db),
	}, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterReservations(e, handler.NewReservationHandler(svc))

	addr := ":" + cfg.Port
	go func() {
		logger.Infoj(log.JSON{"message": "listening", "addr": addr, "env": cfg.Env})
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
