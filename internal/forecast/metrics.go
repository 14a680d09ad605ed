package forecast

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus metrics for forecast runs. A nil *Metrics
// is valid and disables collection.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	activeForecasts prometheus.Gauge
	cacheHitsTotal  prometheus.Counter
	cacheMissTotal  prometheus.Counter
}

// NewMetrics creates and registers the forecast metrics. A nil registry
// gets a fresh one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "demandcast",
			Name:      "forecast_requests_total",
			Help:      "Total forecast requests by method and status",
		}, []string{"method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "demandcast",
			Name:      "forecast_duration_seconds",
			Help:      "Forecast duration by method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		activeForecasts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "demandcast",
			Name:      "forecast_active",
			Help:      "Forecast runs currently in progress",
		}),
		cacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demandcast",
			Name:      "model_cache_hits_total",
			Help:      "Seasonal/volatility model cache hits",
		}),
		cacheMissTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "demandcast",
			Name:      "model_cache_misses_total",
			Help:      "Seasonal/volatility model cache misses",
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.activeForecasts,
		m.cacheHitsTotal,
		m.cacheMissTotal,
	)
	return m
}

// Registry returns the underlying registry for exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) forecastStarted() {
	if m == nil {
		return
	}
	m.activeForecasts.Inc()
}

func (m *Metrics) forecastFinished(method, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.activeForecasts.Dec()
	m.requestsTotal.WithLabelValues(method, status).Inc()
	m.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.cacheHitsTotal.Inc()
}

func (m *Metrics) cacheMiss() {
	if m == nil {
		return
	}
	m.cacheMissTotal.Inc()
}
