package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	recomputeTotal    *prometheus.CounterVec
	recomputeDuration *prometheus.HistogramVec
	recomputeInFlight prometheus.Gauge
	queueLag          *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	recomputeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecomlytics",
			Subsystem: "worker",
			Name:      "recompute_total",
			Help:      "Total recompute passes by dataset and status.",
		},
		[]string{"service", "dataset", "status"},
	)
	recomputeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecomlytics",
			Subsystem: "worker",
			Name:      "recompute_duration_seconds",
			Help:      "Recompute pass duration in seconds by dataset and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "dataset", "status"},
	)
	recomputeInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ecomlytics",
			Subsystem: "worker",
			Name:      "recompute_in_flight",
			Help:      "Number of in-flight recompute passes.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecomlytics",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between upload acceptance and recompute start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(recomputeTotal, recomputeDuration, recomputeInFlight, queueLag)

	return &WorkerMetrics{
		registry:          registry,
		recomputeTotal:    recomputeTotal,
		recomputeDuration: recomputeDuration,
		recomputeInFlight: recomputeInFlight,
		queueLag:          queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartRecompute() {
	m.recomputeInFlight.Inc()
}

func (m *WorkerMetrics) FinishRecompute(service, dataset string, duration time.Duration, err error) {
	m.recomputeInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.recomputeTotal.WithLabelValues(service, dataset, status).Inc()
	m.recomputeDuration.WithLabelValues(service, dataset, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
