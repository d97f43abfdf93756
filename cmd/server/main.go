package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"claimdesk.app/server/common/id"
	"claimdesk.app/server/common/logger"
	"claimdesk.app/server/common/otel"
	"claimdesk.app/server/core/config"
	"claimdesk.app/server/core/db"
	"claimdesk.app/server/internal/blob"
	"claimdesk.app/server/internal/http/middleware"
	httprouter "claimdesk.app/server/internal/http/router"
	"claimdesk.app/server/internal/queue"
	"claimdesk.app/server/internal/service"
	"claimdesk.app/server/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "claimdesk server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected", "auto_migrate", cfg.DB.AutoMigrate)

	blobs, err := blob.New(ctx, cfg.Storage)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize blob storage", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "blob storage ready", "backend", cfg.Storage.Backend)

	producer, closeRedis := connectProducer(ctx, cfg.Pipeline)
	defer closeRedis()

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, service.NewTxRunner(database), blobs, producer, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, database)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

// connectProducer returns a nil producer when Redis is unreachable; claim
// deletion then removes attachment bytes inline.
func connectProducer(ctx context.Context, cfg config.PipelineConfig) (queue.Producer, func()) {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.WarnContext(ctx, "invalid redis url, background cleanup disabled", "error", err)
		return nil, func() {}
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.WarnContext(ctx, "redis unavailable, background cleanup disabled", "error", err)
		_ = redisClient.Close()
		return nil, func() {}
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.RedisStream)

	producer := queue.NewRedisProducer(redisClient, cfg.RedisStream, slog.Default())
	return producer, func() { _ = producer.Close() }
}

func setupRouter(cfg config.Config, services *service.Services, database *db.DB) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		DashboardURL: cfg.DashboardURL,
		IsProduction: cfg.IsProduction(),
		Ping:         database.Ping,
	})

	return router
}

const banner = `
  ___ _      _   ___ __  __ ___  ___ ___ _  __
 / __| |    /_\ |_ _|  \/  |   \| __/ __| |/ /
| (__| |__ / _ \ | || |\/| | |) | _|\__ \ ' <
 \___|____/_/ \_\___|_|  |_|___/|___|___/_|\_\
`
