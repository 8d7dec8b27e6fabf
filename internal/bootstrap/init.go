package bootstrap

import (
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/controller"
	"CommunityReportAPI/internal/metrics"
	"CommunityReportAPI/internal/middleware"
	"CommunityReportAPI/internal/repository"
	"CommunityReportAPI/internal/service"
	"CommunityReportAPI/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

func Init(appConfig *config.AppConfig, repo *repository.Repository, validator *validator.Validate, storage service.BlobStore, hub *websocket.Hub, m *metrics.Metrics, limiter middleware.Limiter, chiMux *chi.Mux) {
	reportService := service.NewReportService(repo.Report, validator, hub, m)
	uploadService := service.NewUploadService(storage, appConfig, validator, m)

	reportController := controller.NewReportController(reportService)
	locationController := controller.NewLocationController(reportService)
	uploadController := controller.NewUploadController(uploadService)
	systemController := controller.NewSystemController(reportService)
	wsController := controller.NewWebSocketController(hub)

	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limiter, appConfig)

	route := NewRoute(appConfig, chiMux, m, rateLimitMiddleware, reportController, locationController, uploadController, systemController, wsController)
	route.Register()
}
