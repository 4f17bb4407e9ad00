package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов к admin-service
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Upstream REST API Метрики
// =============================================================================

// UpstreamRequestsTotal - запросы к backend REST API
// Labels: method, endpoint (/categories, /neworders, ...), status (код или "error")
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of requests sent to the upstream REST API",
	},
	[]string{"method", "endpoint", "status"},
)

// UpstreamRequestDuration - время ответа backend REST API
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of upstream REST API requests in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15},
	},
	[]string{"method", "endpoint"},
)

// UpstreamBreakerState - состояние circuit breaker (0=closed, 1=half-open, 2=open)
var UpstreamBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "upstream_circuit_breaker_state",
		Help: "Current state of the upstream circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// =============================================================================
// Redis Метрики (кеш справочников для выпадающих списков)
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики (аудит изменений)
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики (экраны админки)
// =============================================================================

// ViewsMounted - количество смонтированных экранов
// Labels: kind (list, form)
var ViewsMounted = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "admin_views_mounted",
		Help: "Number of currently mounted admin views",
	},
	[]string{"kind"},
)

// ViewsSwept - экраны, размонтированные по таймауту простоя
var ViewsSwept = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "admin_views_swept_total",
		Help: "Total number of idle views unmounted by the sweeper",
	},
)

// ListLoads - загрузки списков
// Labels: resource, outcome (success, error, discarded)
var ListLoads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_list_loads_total",
		Help: "Total number of list loads",
	},
	[]string{"resource", "outcome"},
)

// RecordsDeleted - удаления записей из списков
var RecordsDeleted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_records_deleted_total",
		Help: "Total number of confirmed record deletions",
	},
	[]string{"resource", "outcome"},
)

// FormSubmissions - отправки форм
// Labels: resource, mode (create, edit), outcome (success, invalid, error)
var FormSubmissions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "admin_form_submissions_total",
		Help: "Total number of form submissions",
	},
	[]string{"resource", "mode", "outcome"},
)
