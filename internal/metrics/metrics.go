// Package metrics exposes Prometheus collectors for report activity.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	UploadResultSuccess  = "success"
	UploadResultRejected = "rejected"
	UploadResultFailed   = "failed"
)

// Metrics groups the service collectors. All recording methods are safe on a
// nil receiver so callers that do not care about metrics can pass nil.
type Metrics struct {
	registry *prometheus.Registry

	reportsCreatedTotal      prometheus.Counter
	reportStatusUpdatesTotal *prometheus.CounterVec
	commentsCreatedTotal     prometheus.Counter
	uploadsTotal             *prometheus.CounterVec
	httpRequestsTotal        *prometheus.CounterVec
}

func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.reportsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reports_created_total",
		Help: "Total number of facility reports submitted",
	})

	m.reportStatusUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_status_updates_total",
			Help: "Total number of report status changes by target status",
		},
		[]string{"status"},
	)

	m.commentsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "comments_created_total",
		Help: "Total number of comments added to reports",
	})

	m.uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Total number of photo uploads by result",
		},
		[]string{"result"}, // success, rejected, failed
	)

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)
}

// Describe implements the Collector interface
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.reportsCreatedTotal.Describe(ch)
	m.reportStatusUpdatesTotal.Describe(ch)
	m.commentsCreatedTotal.Describe(ch)
	m.uploadsTotal.Describe(ch)
	m.httpRequestsTotal.Describe(ch)
}

// Collect implements the Collector interface
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.reportsCreatedTotal.Collect(ch)
	m.reportStatusUpdatesTotal.Collect(ch)
	m.commentsCreatedTotal.Collect(ch)
	m.uploadsTotal.Collect(ch)
	m.httpRequestsTotal.Collect(ch)
}

func (m *Metrics) RecordReportCreated() {
	if m == nil {
		return
	}
	m.reportsCreatedTotal.Inc()
}

func (m *Metrics) RecordStatusUpdate(status string) {
	if m == nil {
		return
	}
	m.reportStatusUpdatesTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordCommentCreated() {
	if m == nil {
		return
	}
	m.commentsCreatedTotal.Inc()
}

func (m *Metrics) RecordUpload(result string) {
	if m == nil {
		return
	}
	m.uploadsTotal.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts requests by their chi route pattern so ids do not explode
// label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
