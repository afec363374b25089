package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Pool metrics
	Deposits        prometheus.Counter
	Withdrawals     prometheus.Counter
	PoolUtilization prometheus.Gauge

	// Loan metrics
	Borrows            prometheus.Counter
	Repayments         prometheus.Counter
	Liquidations       prometheus.Counter
	InterestAccruals   prometheus.Counter
	RateNotifyFailures prometheus.Counter

	// Operation metrics
	OperationDuration *prometheus.HistogramVec
	OperationErrors   *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Pool metrics
		Deposits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendpool_deposits_total",
			Help: "Total number of deposits",
		}),
		Withdrawals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendpool_withdrawals_total",
			Help: "Total number of withdrawals",
		}),
		PoolUtilization: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lendpool_pool_utilization",
			Help: "Borrowed fraction of pool deposits, 0 to 1",
		}),

		// Loan metrics
		Borrows: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendpool_borrows_total",
			Help: "Total number of borrows",
		}),
		Repayments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendpool_repayments_total",
			Help: "Total number of repayments",
		}),
		Liquidations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendpool_liquidations_total",
			Help: "Total number of liquidations",
		}),
		InterestAccruals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendpool_interest_accruals_total",
			Help: "Total number of positions accruing nonzero interest",
		}),
		RateNotifyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lendpool_rate_notify_failures_total",
			Help: "Total rate model utilization updates that failed",
		}),

		// Operation metrics
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lendpool_operation_duration_seconds",
				Help:    "Duration of pool operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		OperationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendpool_operation_errors_total",
				Help: "Total operation errors by type",
			},
			[]string{"operation", "error_type"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendpool_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lendpool_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendpool_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lendpool_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lendpool_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendpool_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendpool_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lendpool_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
