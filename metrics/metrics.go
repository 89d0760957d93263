package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generation pipeline
	GenerationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgen_generation_requests_total",
			Help: "Generation requests by content type and outcome",
		},
		[]string{"content_type", "status"}, // status: ok|empty_topic|invalid|llm_error|export_error
	)
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentgen_generation_duration_seconds",
			Help:    "Duration of the model call per request",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10), // 0.5s..256s
		},
		[]string{"content_type"},
	)
	ExportedBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contentgen_export_pdf_bytes",
			Help:    "Size of rendered PDF documents",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 10),
		},
	)

	// LLM
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgen_llm_requests_total",
			Help: "Number of LLM requests by provider/model",
		},
		[]string{"provider", "model"},
	)

	// HTTP
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgen_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentgen_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentgen_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		GenerationRequests,
		GenerationDurationSeconds,
		ExportedBytes,
		LLMRequests,
		HTTPRequests,
		HTTPRequestDurationSeconds,
		Errors,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Generation
func IncGeneration(contentType, status string) {
	GenerationRequests.WithLabelValues(contentType, status).Inc()
}

func ObserveGenerationDuration(contentType string, d time.Duration) {
	GenerationDurationSeconds.WithLabelValues(contentType).Observe(d.Seconds())
}

func ObserveExportedBytes(n int) {
	ExportedBytes.Observe(float64(n))
}

// LLM
func IncLLMRequest(provider, model string) {
	LLMRequests.WithLabelValues(provider, model).Inc()
}

// HTTP
func ObserveHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
