package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bryanwahyu/verifact/internal/application"
	appanalysis "github.com/bryanwahyu/verifact/internal/application/analysis"
	"github.com/bryanwahyu/verifact/internal/config"
	domai "github.com/bryanwahyu/verifact/internal/domain/ai"
	infraai "github.com/bryanwahyu/verifact/internal/infra/ai"
	openaiclient "github.com/bryanwahyu/verifact/internal/infra/ai/openai"
	"github.com/bryanwahyu/verifact/internal/infra/cache"
	mysqlp "github.com/bryanwahyu/verifact/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/verifact/internal/infra/db/postgres"
	"github.com/bryanwahyu/verifact/internal/infra/events"
	"github.com/bryanwahyu/verifact/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/verifact/internal/infra/storage"
	"github.com/bryanwahyu/verifact/internal/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", "verifact")
	slog.SetDefault(logger)

	if err := run(); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	svc := &appanalysis.Service{
		Metrics: metrics,
		Clock:   application.SystemClock{},
	}
	checkers := map[string]middleware.HealthChecker{}

	// database (optional): tanpa driver, history dimatikan
	if cfg.Database.Driver != "" {
		db, err := connectDB(ctx, cfg)
		if err != nil {
			return fmt.Errorf("%s connect: %w", cfg.Database.Driver, err)
		}
		defer db.Close()
		switch cfg.Database.Driver {
		case "mysql":
			svc.Repo = mysqlp.NewAnalysisRepository(db)
			svc.Fallbacks = mysqlp.NewFallbackRepository(db)
		case "postgres":
			svc.Repo = postgresp.NewAnalysisRepository(db)
			svc.Fallbacks = postgresp.NewFallbackRepository(db)
		}
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	} else {
		slog.Warn("database.driver not set, analysis history disabled")
	}

	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		svc.Reports = store
		checkers["report_store"] = store
	}

	if cfg.NATS.URL != "" {
		nc, err := events.Connect(cfg.NATS.URL, "verifact-api")
		if err != nil {
			return err
		}
		defer nc.Drain()
		svc.Events = events.NewPublisher(nc, cfg.NATS.Subject)
		checkers["nats"] = middleware.CheckFunc(func(context.Context) error {
			if !nc.IsConnected() {
				return errors.New("nats disconnected")
			}
			return nil
		})
	}

	client, closeClient, err := buildAIClient(cfg, checkers)
	if err != nil {
		return err
	}
	defer closeClient()
	svc.AI = client

	handler := httpserver.NewRouter(svc, httpserver.Options{
		APIKeys:        cfg.Auth.APIKeys,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
		Metrics:        metrics,
		Checkers:       checkers,
		Stop:           ctx.Done(),
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr, "ai_enabled", svc.AI != nil, "history_enabled", svc.Repo != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx2)
}

func connectDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	if cfg.Database.Driver == "postgres" {
		return postgresp.Connect(ctx, cfg.DSN())
	}
	return mysqlp.Connect(ctx, cfg.DSN())
}

// buildAIClient stacks the collaborator decorators. The cache sits outside
// the throttle so cached answers never spend request budget.
func buildAIClient(cfg *config.Config, checkers map[string]middleware.HealthChecker) (domai.Client, func(), error) {
	noop := func() {}
	if cfg.OpenAI.APIKey == "" {
		slog.Warn("openai.apiKey not set, using local heuristics only")
		return nil, noop, nil
	}

	var client domai.Client = openaiclient.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.BaseURL,
		time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second,
	)
	client = infraai.NewThrottled(client, cfg.OpenAI.RequestsPerSecond, cfg.OpenAI.Burst)

	if cfg.Redis.Addr == "" {
		return client, noop, nil
	}
	rdb, err := cache.Connect(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, noop, fmt.Errorf("redis: %w", err)
	}
	checkers["redis"] = middleware.CheckFunc(func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	ttl := time.Duration(cfg.Redis.TTLMinutes) * time.Minute
	return cache.NewCachedClient(client, rdb, ttl), func() { _ = rdb.Close() }, nil
}
