package main

import (
	"CommunityReportAPI/internal/adapter"
	"CommunityReportAPI/internal/bootstrap"
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/metrics"
	"CommunityReportAPI/internal/middleware"
	"CommunityReportAPI/internal/repository"
	"CommunityReportAPI/internal/websocket"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.AppEnv,
			SampleRate:       1.0,
			AttachStacktrace: true,
		}); err != nil {
			slog.Error("Failed to initialize Sentry", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer config.CloseDB(db)

	var redisAdapter *adapter.RedisAdapter
	if cfg.RedisEnabled() {
		redisAdapter, err = adapter.NewRedisAdapter(cfg)
		if err != nil {
			slog.Warn("Redis unavailable, falling back to in-process rate limiting", "error", err)
			redisAdapter = nil
		} else {
			defer redisAdapter.Close()
		}
	}

	repo := repository.NewRepository(db, redisAdapter)

	var limiter middleware.Limiter
	if repo.RateLimit != nil {
		limiter = repo.RateLimit
	} else {
		localLimiter := config.NewRateLimiter(2 * time.Hour)
		defer localLimiter.Stop()
		limiter = localLimiter
	}

	s3Client, err := config.NewS3Client(cfg)
	if err != nil {
		slog.Error("Failed to initialize S3 client", "error", err)
	}
	storageAdapter := adapter.NewStorageAdapter(cfg, s3Client)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		slog.Error("Failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	validate := config.NewValidator()
	chiMux := config.NewChi(cfg)

	bootstrap.Init(cfg, repo, validate, storageAdapter, hub, m, limiter, chiMux)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.AppPort),
		Handler:           chiMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting CommunityReportAPI", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
