package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"claimdesk.app/server/common/id"
	"claimdesk.app/server/common/logger"
	"claimdesk.app/server/common/otel"
	"claimdesk.app/server/core/config"
	"claimdesk.app/server/core/db"
	"claimdesk.app/server/internal/blob"
	"claimdesk.app/server/internal/queue"
	"claimdesk.app/server/internal/service"
	"claimdesk.app/server/internal/store"
	"claimdesk.app/server/internal/worker"
)

const maxAttempts = 3

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger.Setup(cfg)

	slog.InfoContext(ctx, "claimdesk worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Pipeline.RedisGroup,
		"consumer_name", cfg.Pipeline.RedisConsumer)

	// Different node id than the server
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	blobs, err := blob.New(ctx, cfg.Storage)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize blob storage", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Pipeline.RedisStream,
		Group:        cfg.Pipeline.RedisGroup,
		Consumer:     cfg.Pipeline.RedisConsumer,
		DLQStream:    cfg.Pipeline.RedisDLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  maxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	// The worker never enqueues, so services get no producer.
	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		blobs,
		nil,
		cfg,
	)

	w := worker.New(consumer, map[queue.TaskType]worker.TaskHandler{
		queue.TaskTypeBlobCleanup: worker.NewBlobCleanupHandler(blobs),
	}, worker.Config{MaxAttempts: maxAttempts})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:      cfg.Pipeline.RedisStream,
		Group:       cfg.Pipeline.RedisGroup,
		Consumer:    cfg.Pipeline.RedisConsumer + "-reclaimer",
		MinIdle:     5 * time.Minute,
		Interval:    time.Minute,
		BatchSize:   10,
		MaxAttempts: maxAttempts,
	}, consumer, w.ProcessMessage)

	sweeper := worker.NewSweeper(services.Reminders(), services.Auth(), worker.SweeperConfig{
		Interval:    cfg.Reminder.Interval,
		RemindAfter: cfg.Reminder.After,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go reclaimer.Run(ctx)
	go sweeper.Run(ctx)

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Reclaimer and sweeper stop quickly; the worker may be mid-task.
	reclaimer.Stop()
	sweeper.Stop()
	w.Stop()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}
	cancel()

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "worker shutdown complete")
}

const banner = `
  ___ _      _   ___ __  __ ___  ___ ___ _  __ __      _____  ___ _  _____ ___
 / __| |    /_\ |_ _|  \/  |   \| __/ __| |/ / \ \    / / _ \| _ \ |/ / __| _ \
| (__| |__ / _ \ | || |\/| | |) | _|\__ \ ' <   \ \/\/ / (_) |   / ' <| _||   /
 \___|____/_/ \_\___|_|  |_|___/|___|___/_|\_\   \_/\_/ \___/|_|_\_|\_\___|_|_\
`
