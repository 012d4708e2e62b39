// Package metrics prometheus-метрики сервиса
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса. Все методы безопасны для nil-получателя,
// поэтому компоненты могут работать и при выключенных метриках.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	DBTransactionsTotal *prometheus.CounterVec
	LockAcquireDuration *prometheus.HistogramVec

	// Доменные
	BookingsCreatedTotal   *prometheus.CounterVec
	BookingConflictsTotal  *prometheus.CounterVec
	StatusTransitionsTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном регистре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg))

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}),
		DBTransactionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_transactions_total",
			Help: "Transactions by isolation level and outcome",
		}, []string{"isolation", "outcome"}),
		LockAcquireDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lock_acquire_duration_seconds",
			Help:    "Time spent waiting for a staff/day lock",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"backend", "status"}),

		BookingsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Created bookings by staff selection mode",
		}, []string{"selection"}),
		BookingConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Booking conflicts by detection stage",
		}, []string{"stage"}),
		StatusTransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_status_transitions_total",
			Help: "Applied booking status transitions",
		}, []string{"from", "to"}),
	}
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.Set(float64(open))
	m.DBInUseConnections.Set(float64(inUse))
	m.DBIdleConnections.Set(float64(idle))
	m.DBWaitCount.Set(float64(waitCount))
}

// IncTransaction фиксирует завершение транзакции (committed, rolled_back, serialization_failure)
func (m *Metrics) IncTransaction(isolation, outcome string) {
	if m == nil {
		return
	}
	m.DBTransactionsTotal.WithLabelValues(isolation, outcome).Inc()
}

// ObserveLockAcquire фиксирует ожидание блокировки
func (m *Metrics) ObserveLockAcquire(backend string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "acquired"
	if err != nil {
		status = "failed"
	}
	m.LockAcquireDuration.WithLabelValues(backend, status).Observe(duration.Seconds())
}

// BookingCreated фиксирует созданное бронирование (selection: any|specific)
func (m *Metrics) BookingCreated(selection string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(selection).Inc()
}

// BookingConflict фиксирует конфликт (stage: decision|commit)
func (m *Metrics) BookingConflict(stage string) {
	if m == nil {
		return
	}
	m.BookingConflictsTotal.WithLabelValues(stage).Inc()
}

// StatusTransition фиксирует смену статуса
func (m *Metrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}
