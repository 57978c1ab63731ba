// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the parsing pipeline on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry
	service  string

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	uploadsTotal            *prometheus.CounterVec
	extractionWarningsTotal *prometheus.CounterVec
	cacheLookupsTotal       *prometheus.CounterVec
	inferenceTotal          *prometheus.CounterVec
	inferenceDuration       prometheus.Histogram
	parsesTotal             *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridrez",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gridrez",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gridrez",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridrez",
			Subsystem: "pipeline",
			Name:      "uploads_total",
			Help:      "Total accepted uploads by file format.",
		},
		[]string{"service", "format"},
	)
	extractionWarningsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridrez",
			Subsystem: "pipeline",
			Name:      "extraction_warnings_total",
			Help:      "Total extraction units skipped but tolerated (pages, tables).",
		},
		[]string{"service", "format"},
	)
	cacheLookupsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridrez",
			Subsystem: "pipeline",
			Name:      "cache_lookups_total",
			Help:      "Fingerprint cache lookups by result.",
		},
		[]string{"service", "result"},
	)
	inferenceTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridrez",
			Subsystem: "inference",
			Name:      "requests_total",
			Help:      "Total inference calls by outcome.",
		},
		[]string{"service", "outcome"},
	)
	inferenceDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gridrez",
			Subsystem: "inference",
			Name:      "duration_seconds",
			Help:      "Inference call duration in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 120},
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	parsesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gridrez",
			Subsystem: "pipeline",
			Name:      "parses_total",
			Help:      "Total parse outcomes by terminal status.",
		},
		[]string{"service", "status"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		uploadsTotal,
		extractionWarningsTotal,
		cacheLookupsTotal,
		inferenceTotal,
		inferenceDuration,
		parsesTotal,
	)

	return &Metrics{
		registry:                registry,
		service:                 service,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		uploadsTotal:            uploadsTotal,
		extractionWarningsTotal: extractionWarningsTotal,
		cacheLookupsTotal:       cacheLookupsTotal,
		inferenceTotal:          inferenceTotal,
		inferenceDuration:       inferenceDuration,
		parsesTotal:             parsesTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			m.service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(m.service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses identifier segments so label cardinality stays
// bounded.
func normalizePath(path string) string {
	switch {
	case strings.HasSuffix(path, "/summary") && strings.HasPrefix(path, "/v1/resumes/"):
		return "/v1/resumes/{resume_id}/summary"
	case strings.HasPrefix(path, "/v1/resumes/") && path != "/v1/resumes/export":
		return "/v1/resumes/{resume_id}"
	default:
		return path
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
