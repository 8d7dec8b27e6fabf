package scheduler

import (
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/scheduler/job"
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cfg     *config.AppConfig
	cron    *cron.Cron
	reports job.PhotoLister
	storage job.ObjectStore
}

func New(cfg *config.AppConfig, reports job.PhotoLister, storage job.ObjectStore) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		cron:    cron.New(),
		reports: reports,
		storage: storage,
	}
}

func (s *Scheduler) Start() error {
	slog.Info("Starting Scheduler...")

	if err := s.registerJobs(); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("Scheduler started successfully")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) registerJobs() error {
	_, err := s.cron.AddFunc(s.cfg.UploadCleanupCron, s.runUploadCleanup)
	if err != nil {
		slog.Error("Failed to register Upload Cleanup job", "error", err)
		return err
	}
	slog.Info("Registered Upload Cleanup Job", "schedule", s.cfg.UploadCleanupCron)
	return nil
}

func (s *Scheduler) runUploadCleanup() {
	slog.Info("Starting Upload Cleanup Job")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	deleted, err := job.RunUploadCleanup(ctx, s.reports, s.storage, s.cfg, time.Now())
	if err != nil {
		slog.Error("Upload Cleanup Job failed", "error", err)
		return
	}
	slog.Info("Upload Cleanup Job completed", "deleted", deleted)
}
