package observability

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

const defaultNamespace = "hoopscout"

// Metrics owns every prometheus collector of the service. All methods are safe on a nil receiver,
// so callers can hold a nil *Metrics when metrics are disabled.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	aggOps       *prometheus.CounterVec
	aggLatency   *prometheus.HistogramVec
	aggConflicts *prometheus.CounterVec
	aggRetries   *prometheus.CounterVec

	reportsGenerated *prometheus.CounterVec
	rateLimited      prometheus.Counter

	dbStats *prometheus.GaugeVec
}

type MetricsOption func(*metricsOptions)

type metricsOptions struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry
}

func WithNamespace(ns string) MetricsOption {
	return func(o *metricsOptions) {
		if ns = strings.TrimSpace(ns); ns != "" {
			o.namespace = ns
		}
	}
}

func WithHistogramBuckets(b []float64) MetricsOption {
	return func(o *metricsOptions) {
		if len(b) > 0 {
			o.buckets = b
		}
	}
}

func WithRegistry(r *prometheus.Registry) MetricsOption {
	return func(o *metricsOptions) {
		if r != nil {
			o.registry = r
		}
	}
}

// NewMetrics registers the collectors on a private registry (never the global default one).
func NewMetrics(opts ...MetricsOption) *Metrics {
	o := metricsOptions{
		namespace: defaultNamespace,
		buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
		o.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(o.registry)
	m := &Metrics{registry: o.registry}

	m.apiRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: o.namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total API requests by method/route/status.",
	}, []string{"method", "route", "status"})
	m.apiLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: o.namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "API request latency in seconds by method/route/status.",
		Buckets:   o.buckets,
	}, []string{"method", "route", "status"})
	m.apiInflight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: o.namespace,
		Subsystem: "api",
		Name:      "inflight_requests",
		Help:      "In-flight API requests.",
	})

	m.aggOps = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: o.namespace,
		Subsystem: "aggregate",
		Name:      "operations_total",
		Help:      "Aggregate write operations by name and outcome code.",
	}, []string{"operation", "status"})
	m.aggLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: o.namespace,
		Subsystem: "aggregate",
		Name:      "operation_duration_seconds",
		Help:      "Aggregate write latency in seconds, transaction included.",
		Buckets:   o.buckets,
	}, []string{"operation", "status"})
	m.aggConflicts = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: o.namespace,
		Subsystem: "aggregate",
		Name:      "conflicts_total",
		Help:      "Aggregate writes rejected with a conflict.",
	}, []string{"operation"})
	m.aggRetries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: o.namespace,
		Subsystem: "aggregate",
		Name:      "retryable_total",
		Help:      "Aggregate writes that failed with a retryable error.",
	}, []string{"operation"})

	m.reportsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: o.namespace,
		Subsystem: "reports",
		Name:      "generated_total",
		Help:      "Reports persisted by kind.",
	}, []string{"kind"})
	m.rateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: o.namespace,
		Subsystem: "api",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the per-client rate limiter.",
	})

	m.dbStats = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: o.namespace,
		Subsystem: "db",
		Name:      "pool",
		Help:      "database/sql pool statistics.",
	}, []string{"stat"})

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the prometheus exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.WithLabelValues(method, route, code).Inc()
	m.apiLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAggregateOperation(name, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.aggOps.WithLabelValues(name, status).Inc()
	m.aggLatency.WithLabelValues(name, status).Observe(dur.Seconds())
}

func (m *Metrics) IncAggregateConflict(name string) {
	if m == nil {
		return
	}
	m.aggConflicts.WithLabelValues(name).Inc()
}

func (m *Metrics) IncAggregateRetry(name string) {
	if m == nil {
		return
	}
	m.aggRetries.WithLabelValues(name).Inc()
}

func (m *Metrics) IncReportGenerated(kind string) {
	if m == nil {
		return
	}
	m.reportsGenerated.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// StartDBCollector samples sql.DBStats every interval until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sampleDB(log, db)
			}
		}
	}()
}

func (m *Metrics) sampleDB(log *logger.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	stats := sqlDB.Stats()
	m.dbStats.WithLabelValues("open_connections").Set(float64(stats.OpenConnections))
	m.dbStats.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.dbStats.WithLabelValues("idle").Set(float64(stats.Idle))
	m.dbStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
	m.dbStats.WithLabelValues("wait_duration_seconds").Set(stats.WaitDuration.Seconds())
	m.dbStats.WithLabelValues("max_open_connections").Set(float64(stats.MaxOpenConnections))
}
