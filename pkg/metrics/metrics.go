package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBOpenConns      *prometheus.GaugeVec
	DBInUseConns     *prometheus.GaugeVec
	DBIdleConns      *prometheus.GaugeVec
	DBWaitCount      *prometheus.GaugeVec
	DBWaitDurationMs *prometheus.GaugeVec

	ReservationAttempts *prometheus.CounterVec
	StatusTransitions   *prometheus.CounterVec
}

// New регистрирует метрики в глобальном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer регистрирует метрики в указанном регистре (используется в тестах)
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitDurationMs: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_duration_milliseconds",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: constLabels,
		}, []string{"db"}),

		ReservationAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_attempts_total",
			Help:        "Booking attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_status_transitions_total",
			Help:        "Reservation status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to", "actor"}),
	}
}

// ObserveHTTPRequest записывает метрики одного HTTP-запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// IncReservationAttempt считает исход попытки бронирования
func (m *Metrics) IncReservationAttempt(outcome string) {
	if m == nil {
		return
	}
	m.ReservationAttempts.WithLabelValues(outcome).Inc()
}

// IncStatusTransition считает переход статуса бронирования
func (m *Metrics) IncStatusTransition(from, to, actor string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to, actor).Inc()
}
