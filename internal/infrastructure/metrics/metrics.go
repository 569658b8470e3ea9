package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transaction metrics
	TransactionsCompleted *prometheus.CounterVec
	TransactionsFailed    *prometheus.CounterVec
	TransactionAmount     *prometheus.HistogramVec
	OperationDuration     *prometheus.HistogramVec

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountsSuspended prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		TransactionsCompleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankd_transactions_completed_total",
				Help: "Total number of completed transactions by type",
			},
			[]string{"type"},
		),
		TransactionsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankd_transactions_failed_total",
				Help: "Total number of failed transactions by type",
			},
			[]string{"type"},
		),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankd_transaction_amount",
				Help:    "Transaction amounts by type",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"type"},
		),
		OperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankd_operation_duration_seconds",
				Help:    "Duration of ledger operations by type",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankd_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsSuspended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bankd_accounts_suspended_total",
			Help: "Total number of account suspensions",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankd_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankd_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankd_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankd_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
