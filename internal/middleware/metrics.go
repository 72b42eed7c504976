package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bryanwahyu/verifact/internal/domain/analysis"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	RequestsInProgress prometheus.Gauge

	AnalysesTotal   *prometheus.CounterVec
	AnalysisScore   *prometheus.HistogramVec
	FactChecksTotal *prometheus.CounterVec
	FallbacksTotal  *prometheus.CounterVec
}

// NewMetrics registers all collectors on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifact_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verifact_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		RequestsInProgress: f.NewGauge(prometheus.GaugeOpts{
			Name: "verifact_http_requests_in_progress",
			Help: "HTTP requests currently being served",
		}),
		AnalysesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifact_analyses_total",
			Help: "Analyses completed, by content type and score band",
		}, []string{"content_type", "band"}),
		AnalysisScore: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verifact_authenticity_score",
			Help:    "Distribution of final authenticity scores",
			Buckets: prometheus.LinearBuckets(10, 10, 9),
		}, []string{"content_type"}),
		FactChecksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifact_fact_checks_total",
			Help: "Analyses that carried a fact-check result",
		}, []string{"content_type"}),
		FallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "verifact_ai_fallbacks_total",
			Help: "Collaborator steps answered by local heuristics",
		}, []string{"step"}),
	}
}

// unmatchedRoute labels requests that never reached a route: 404s and
// requests rejected by auth before routing.
const unmatchedRoute = "unmatched"

func band(score int) string {
	authentic, warning := analysis.Band(score)
	switch {
	case authentic:
		return "authentic"
	case warning:
		return "warning"
	default:
		return "flagged"
	}
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return "OTHER"
}

// ObserveAnalysis implements the analysis service's MetricsRecorder.
func (m *Metrics) ObserveAnalysis(contentType string, score int, factChecked bool) {
	m.AnalysesTotal.WithLabelValues(contentType, band(score)).Inc()
	m.AnalysisScore.WithLabelValues(contentType).Observe(float64(score))
	if factChecked {
		m.FactChecksTotal.WithLabelValues(contentType).Inc()
	}
}

func (m *Metrics) ObserveFallback(step string) {
	m.FallbacksTotal.WithLabelValues(step).Inc()
}

// Middleware tracks request metrics, labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.RequestsInProgress.Inc()
		defer m.RequestsInProgress.Dec()

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := unmatchedRoute
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		method := methodLabel(r.Method)
		m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(wrapped.statusCode)).Inc()
		m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
