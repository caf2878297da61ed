package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	bookingAdmissions *prometheus.CounterVec
	roomLockWait      prometheus.Histogram
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре (удобно для тестов)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: labels,
		}, []string{"operation", "status"}),
		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: labels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections.",
			ConstLabels: labels,
		}),
		dbInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: labels,
		}),
		dbIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections.",
			ConstLabels: labels,
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: labels,
		}),

		bookingAdmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_admissions_total",
			Help:        "Booking admission attempts by result.",
			ConstLabels: labels,
		}, []string{"result"}),
		roomLockWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "room_lock_wait_seconds",
			Help:        "Time spent waiting for a per-room lock.",
			ConstLabels: labels,
			Buckets:     []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
	}
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery учитывает запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats публикует статистику пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbIdleConns.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

// IncBookingAdmission учитывает результат попытки бронирования
func (m *Metrics) IncBookingAdmission(result string) {
	m.bookingAdmissions.WithLabelValues(result).Inc()
}

// ObserveLockWait учитывает время ожидания блокировки комнаты
func (m *Metrics) ObserveLockWait(duration time.Duration) {
	m.roomLockWait.Observe(duration.Seconds())
}
