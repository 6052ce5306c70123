package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/fixture-tickets/internal/booking"
	"github.com/iliyamo/fixture-tickets/internal/catalog"
	"github.com/iliyamo/fixture-tickets/internal/config"
	"github.com/iliyamo/fixture-tickets/internal/database"
	"github.com/iliyamo/fixture-tickets/internal/handler"
	"github.com/iliyamo/fixture-tickets/internal/identity"
	"github.com/iliyamo/fixture-tickets/internal/logging"
	"github.com/iliyamo/fixture-tickets/internal/middleware"
	"github.com/iliyamo/fixture-tickets/internal/queue"
	"github.com/iliyamo/fixture-tickets/internal/repository"
	"github.com/iliyamo/fixture-tickets/internal/router"
	"github.com/iliyamo/fixture-tickets/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	health := &handler.HealthHandler{Checks: map[string]handler.Check{}}

	// ---- Storage and identity ----
	var (
		ledger booking.Ledger = booking.NewMemoryLedger()
		gate   identity.Gate  = identity.NewDemoGate()
	)
	if cfg.Storage == config.StorageMySQL {
		db, err := database.Open(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := repository.EnsureSchema(ctx, db); err != nil {
			return err
		}
		ledger = repository.NewBookingRepo(db)
		health.Checks["mysql"] = func(ctx context.Context) error { return db.PingContext(ctx) }

		if cfg.Identity == config.IdentityStore {
			users := repository.NewUserRepo(db, cfg.BcryptCost)
			created, err := users.EnsureAdmin(ctx, identity.AdminName, identity.AdminEmail, identity.AdminPassword)
			if err != nil {
				return err
			}
			if created {
				logger.Info("admin account created", zap.String("email", identity.AdminEmail))
			}
			gate = identity.NewStoreGate(users)
		}
	}
	logger.Info("storage ready", zap.String("storage", cfg.Storage), zap.String("identity", cfg.Identity))

	// ---- Events ----
	var notifier booking.Notifier
	if cfg.Events.Enabled {
		notifier = service.NewEventPublisher(cfg.Events.URL, cfg.Events.Queue, logger.Named("events"))
		consumer := &queue.Consumer{
			URL:    cfg.Events.URL,
			Queue:  cfg.Events.Queue,
			LogDir: cfg.LogDir,
			Log:    logger.Named("audit"),
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("audit consumer stopped", zap.Error(err))
			}
		}()
	}

	// ---- Redis (optional) ----
	var rdb *redis.Client
	if cfg.Cache.Enabled || cfg.RateLimit.Enabled {
		client, err := config.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, cache and rate limit disabled", zap.Error(err))
		} else {
			rdb = client
			defer rdb.Close()
			health.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	// ---- Booking core ----
	fixtures := catalog.NewStatic(catalog.DefaultFixtures())
	engine := booking.NewEngine(booking.Deps{
		Ledger:   ledger,
		Fixtures: fixtures,
		Notifier: notifier,
		Logger:   logger.Named("booking"),
	})
	if cfg.SeedDemo {
		n, err := booking.Seed(ctx, ledger, booking.DemoBookings())
		if err != nil {
			return err
		}
		logger.Info("demo bookings seeded", zap.Int("inserted", n))
	}
	sessions := booking.NewSessions(gate, engine, cfg.SessionIdle, logger.Named("sessions"))
	go sessions.RunSweeper(ctx, time.Minute)

	// ---- HTTP ----
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger(logger.Named("http")))

	cache := middleware.NewRedisCache(cfg.Cache, rdb, logger.Named("cache"))
	limit := middleware.NewTokenBucket(cfg.RateLimit, rdb, logger.Named("ratelimit"))
	payment := catalog.DefaultPaymentDetails()

	router.RegisterRoutes(e, health)
	router.RegisterAuth(e, handler.NewAuthHandler(sessions, cfg.JWTSecret, cfg.AccessTTLMin, logger), cfg.JWTSecret, sessions, limit)
	router.RegisterPublic(e, handler.NewPublicHandler(fixtures, engine, payment, logger), cache, limit)
	router.RegisterPatron(e, handler.NewPatronHandler(logger), cfg.JWTSecret, sessions, limit)
	router.RegisterAdmin(e, handler.NewAdminHandler(engine, payment, logger), cfg.JWTSecret, sessions)

	addr := ":" + cfg.Port
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
