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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/garrettladley/terrahook/internal/archive"
	"github.com/garrettladley/terrahook/internal/config"
	"github.com/garrettladley/terrahook/internal/identity"
	"github.com/garrettladley/terrahook/internal/metrics"
	"github.com/garrettladley/terrahook/internal/migrations/postgres"
	"github.com/garrettladley/terrahook/internal/notify"
	"github.com/garrettladley/terrahook/internal/ratelimit"
	xredis "github.com/garrettladley/terrahook/internal/redis"
	"github.com/garrettladley/terrahook/internal/record"
	"github.com/garrettladley/terrahook/internal/server"
	"github.com/garrettladley/terrahook/internal/service/webhook"
	"github.com/garrettladley/terrahook/internal/signature"
	"github.com/garrettladley/terrahook/internal/xslog"
)

const (
	keyPort    = "port"
	keyEnv     = "env"
	keyLimit   = "limit_per_minute"
	keyApplied = "applied"
	keyChannel = "channel_prefix"

	shutdownTimeout = 30 * time.Second
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if missing := cfg.Missing(); len(missing) > 0 {
		logger.WarnContext(ctx, "webhook route disabled until configuration is complete", xslog.Missing(missing))
	}

	m := metrics.New()

	pool, err := initPostgres(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	if pool != nil {
		defer pool.Close()
	}

	s3Client, err := archive.NewS3Client(ctx, archive.ClientConfig{
		Region:          cfg.Storage.Region,
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		UsePathStyle:    cfg.Storage.UsePathStyle,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage client: %w", err)
	}

	limiter := ratelimit.New(cfg.Webhook.RateLimitPerMinute)
	defer limiter.Close()
	m.TrackGauge("ratelimit_tracked_addresses", "Caller addresses with a live rate-limit window.",
		func() float64 { return float64(limiter.Tracked()) })

	opts := []webhook.Option{webhook.WithMetrics(m)}
	if cfg.Redis.Enabled() {
		redisClient, err := xredis.New(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize redis client: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		logger.InfoContext(ctx, "payload notifications enabled", slog.String(keyChannel, cfg.Redis.ChannelPrefix))
		opts = append(opts, webhook.WithNotifier(notify.NewPublisher(redisClient, cfg.Redis.ChannelPrefix)))
	}

	var db record.Execer = unconfiguredDB{}
	if pool != nil {
		db = pool
	}

	svc := webhook.NewProcessor(
		signature.New(cfg.Terra.Secret),
		archive.NewWriter(s3Client, cfg.Storage.Bucket, cfg.Storage.Region),
		record.NewWriter(db),
		identity.NewLinker(db),
		opts...,
	)

	httpServer := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: server.NewHandler(server.Deps{
			Config:  cfg,
			Service: svc,
			Limiter: limiter,
			Metrics: m,
			Logger:  logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port),
			slog.String(keyEnv, string(cfg.Env)),
			slog.Int(keyLimit, limiter.Limit()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

// initPostgres returns a nil pool when no database is configured; the
// webhook route then answers 500 until DATABASE_URL is set.
func initPostgres(ctx context.Context, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}

	logger.InfoContext(ctx, "initializing PostgreSQL")

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if !cfg.Database.Migrate {
		return pool, nil
	}

	applied, err := postgres.Apply(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	logger.InfoContext(ctx, "migrations applied", slog.Any(keyApplied, applied))

	return pool, nil
}
