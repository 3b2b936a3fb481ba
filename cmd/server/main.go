package main // Entry point package

import (
	"context"   // shutdown deadline
	"errors"    // http.ErrServerClosed matching
	"net/http"  // server closed sentinel
	"os"        // exit codes
	"os/signal" // graceful shutdown on SIGINT/SIGTERM
	"syscall"   // SIGTERM
	"time"      // shutdown timeout

	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // recover and request id middleware
	"go.uber.org/zap"                               // structured logging

	"github.com/iliyamo/terrain-rental/internal/config"     // environment configuration
	"github.com/iliyamo/terrain-rental/internal/database"   // MySQL connection and schema
	"github.com/iliyamo/terrain-rental/internal/handler"    // HTTP handlers
	"github.com/iliyamo/terrain-rental/internal/logger"     // zap setup
	"github.com/iliyamo/terrain-rental/internal/middleware" // rate limiting and request logs
	"github.com/iliyamo/terrain-rental/internal/queue"      // terrain.created events
	"github.com/iliyamo/terrain-rental/internal/repository" // MySQL store
	"github.com/iliyamo/terrain-rental/internal/router"     // route registration
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err == nil {
		err = cfg.RequireJWT() // the API cannot issue tokens without a secret
	}
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	db, err := database.Open(cfg.DB) // Connect and ping MySQL
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil { // Create tables when missing
		return err
	}
	store := repository.NewMySQLStore(db)

	// RabbitMQ is optional: without a URL no events are published or consumed.
	var events handler.EventPublisher
	if cfg.AMQP.URL != "" {
		events = queue.NewPublisher(cfg.AMQP.URL, log)
		go func() {
			if err := queue.NewConsumer(cfg.AMQP.URL, log).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("terrain consumer stopped", zap.Error(err))
			}
		}()
	}

	// Redis is optional too: a nil client disables rate limiting.
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil && cfg.RateLimit.Enabled {
		log.Warn("redis unreachable, rate limiting disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(log))

	router.RegisterRoutes(e, router.Deps{
		Health:    handler.Health(db),
		Auth:      handler.NewAuthHandler(cfg.JWT, store.Users, log),
		Terrains:  handler.NewTerrainHandler(store, handler.DiskImages{Dir: cfg.UploadDir}, events, log),
		JWTSecret: cfg.JWT.Secret,
		RateLimit: middleware.NewTokenBucket(cfg.RateLimit, rdb, log),
	})

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	errc := make(chan error, 1)
	go func() { errc <- e.Start(addr) }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
