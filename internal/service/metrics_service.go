package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lssauto/auto-scheduler/internal/dto"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the scheduling engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	runsTotal       prometheus.Counter
	runDuration     prometheus.Histogram
	sessionsPlaced  prometheus.Counter
	requestsQueued  prometheus.Counter
	unplacedBlocks  prometheus.Counter
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	runsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_runs_total",
		Help: "Total number of scheduling runs",
	})

	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_run_duration_seconds",
		Help:    "Duration of scheduling runs in seconds",
		Buckets: prometheus.DefBuckets,
	})

	sessionsPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_sessions_placed_total",
		Help: "Sessions placed into rooms or confirmed tutor-scheduled",
	})

	requestsQueued := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_registrar_requests_total",
		Help: "Sessions queued for manual registrar booking",
	})

	unplacedBlocks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_unplaced_blocks_total",
		Help: "Session blocks left unplaced after a run",
	})

	registry.MustRegister(requestDuration, requestTotal, runsTotal, runDuration, sessionsPlaced, requestsQueued, unplacedBlocks)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		runsTotal:       runsTotal,
		runDuration:     runDuration,
		sessionsPlaced:  sessionsPlaced,
		requestsQueued:  requestsQueued,
		unplacedBlocks:  unplacedBlocks,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveRun records the outcome of one scheduling run.
func (m *MetricsService) ObserveRun(report *dto.ScheduleRunReport, duration time.Duration) {
	if m == nil || report == nil {
		return
	}
	m.runsTotal.Inc()
	m.runDuration.Observe(duration.Seconds())
	m.sessionsPlaced.Add(float64(report.SessionsPlaced))
	m.requestsQueued.Add(float64(report.Requests))
	m.unplacedBlocks.Add(float64(report.Unplaced))
}
