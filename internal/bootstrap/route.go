package bootstrap

import (
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/controller"
	"CommunityReportAPI/internal/metrics"
	"CommunityReportAPI/internal/middleware"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const rateLimitWindow = time.Hour

type Route struct {
	cfg                 *config.AppConfig
	chi                 *chi.Mux
	metrics             *metrics.Metrics
	rateLimitMiddleware *middleware.RateLimitMiddleware
	reportController    *controller.ReportController
	locationController  *controller.LocationController
	uploadController    *controller.UploadController
	systemController    *controller.SystemController
	wsController        *controller.WebSocketController
}

func NewRoute(cfg *config.AppConfig, chi *chi.Mux, m *metrics.Metrics, rateLimitMiddleware *middleware.RateLimitMiddleware, reportController *controller.ReportController, locationController *controller.LocationController, uploadController *controller.UploadController, systemController *controller.SystemController, wsController *controller.WebSocketController) *Route {
	return &Route{
		cfg:                 cfg,
		chi:                 chi,
		metrics:             m,
		rateLimitMiddleware: rateLimitMiddleware,
		reportController:    reportController,
		locationController:  locationController,
		uploadController:    uploadController,
		systemController:    systemController,
		wsController:        wsController,
	}
}

func (route *Route) Register() {
	route.chi.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to CommunityReportAPI"))
	})

	route.chi.Handle("/metrics", route.metrics.Handler())

	route.chi.Route("/api", func(r chi.Router) {
		r.Use(route.metrics.Middleware)

		r.Get("/ws/dashboard", route.wsController.ServeDashboard)

		r.Group(func(r chi.Router) {
			r.Use(config.RequestTimeout())

			r.Get("/health", route.systemController.Health)
			r.Get("/meta", route.systemController.Meta)

			r.Get("/locations/status", route.locationController.GetLocationStatus)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/", route.reportController.ListReports)
				r.With(route.rateLimitMiddleware.Limit("reports", route.cfg.RateLimitReportsPerHour, rateLimitWindow)).
					Post("/", route.reportController.CreateReport)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", route.reportController.GetReport)
					r.Patch("/", route.reportController.UpdateReportStatus)

					r.Get("/comments", route.reportController.ListComments)
					r.With(route.rateLimitMiddleware.Limit("comments", route.cfg.RateLimitCommentsPerHour, rateLimitWindow)).
						Post("/comments", route.reportController.AddComment)
				})
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Use(route.rateLimitMiddleware.Limit("uploads", route.cfg.RateLimitUploadsPerHour, rateLimitWindow))

				r.Post("/", route.uploadController.UploadPhoto)
				r.Get("/presign", route.uploadController.PresignUpload)
			})
		})
	})
}
