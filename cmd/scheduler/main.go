package main

import (
	"CommunityReportAPI/internal/adapter"
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/repository"
	"CommunityReportAPI/internal/scheduler"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.LoadAppConfig()

	cfg.DBMigrate = false

	db, err := config.InitDB(cfg)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer config.CloseDB(db)

	if db == nil {
		slog.Error("Upload cleanup needs a persistent database, DB_DRIVER=memory is not supported")
		os.Exit(1)
	}

	s3Client, err := config.NewS3Client(cfg)
	if err != nil || s3Client == nil {
		slog.Error("Failed to initialize S3 client", "error", err)
		os.Exit(1)
	}

	repo := repository.NewReportRepository(db)
	storageAdapter := adapter.NewStorageAdapter(cfg, s3Client)

	srv := scheduler.New(cfg, repo, storageAdapter)

	if err := srv.Start(); err != nil {
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down scheduler...")
	srv.Stop()
}
