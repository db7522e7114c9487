package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	uploadTotal     *prometheus.CounterVec
	uploadRecords   *prometheus.HistogramVec
	reportTotal     *prometheus.CounterVec
	simulationTotal *prometheus.CounterVec
	exportTotal     *prometheus.CounterVec
}

func NewAPIMetrics(service string) *APIMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecomlytics",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecomlytics",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ecomlytics",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	uploadTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecomlytics",
			Subsystem: "ingest",
			Name:      "uploads_total",
			Help:      "Total CSV uploads by dataset and outcome.",
		},
		[]string{"service", "dataset", "status"},
	)
	uploadRecords := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecomlytics",
			Subsystem: "ingest",
			Name:      "upload_records",
			Help:      "Distribution of accepted records per upload.",
			Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000, 10000, 50000},
		},
		[]string{"service", "dataset"},
	)
	reportTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecomlytics",
			Subsystem: "reports",
			Name:      "requests_total",
			Help:      "Total analytics report reads by report type.",
		},
		[]string{"service", "report"},
	)
	simulationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecomlytics",
			Subsystem: "reports",
			Name:      "simulations_total",
			Help:      "Total what-if simulations by scenario.",
		},
		[]string{"service", "scenario"},
	)
	exportTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecomlytics",
			Subsystem: "reports",
			Name:      "exports_total",
			Help:      "Total report exports by format and report type.",
		},
		[]string{"service", "format", "report"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		uploadTotal,
		uploadRecords,
		reportTotal,
		simulationTotal,
		exportTotal,
	)

	return &APIMetrics{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
		uploadTotal:     uploadTotal,
		uploadRecords:   uploadRecords,
		reportTotal:     reportTotal,
		simulationTotal: simulationTotal,
		exportTotal:     exportTotal,
	}
}

func (m *APIMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *APIMetrics) Middleware(service string, next http.Handler) http.Handler {
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
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/uploads/"):
		return "/api/uploads/{job_id}"
	case strings.HasPrefix(path, "/api/export/"):
		return "/api/export/{format}/{report}"
	case strings.HasPrefix(path, "/api/sample-data/"):
		return "/api/sample-data/{dataset}"
	default:
		return path
	}
}

func (m *APIMetrics) RecordUpload(service, dataset, status string, records int) {
	m.uploadTotal.WithLabelValues(service, dataset, status).Inc()
	if records > 0 {
		m.uploadRecords.WithLabelValues(service, dataset).Observe(float64(records))
	}
}

func (m *APIMetrics) RecordReport(service, report string) {
	m.reportTotal.WithLabelValues(service, report).Inc()
}

func (m *APIMetrics) RecordSimulation(service, scenario string) {
	if scenario == "" {
		scenario = "unknown"
	}
	m.simulationTotal.WithLabelValues(service, scenario).Inc()
}

func (m *APIMetrics) RecordExport(service, format, report string) {
	m.exportTotal.WithLabelValues(service, format, report).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
