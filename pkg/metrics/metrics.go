// Package metrics Prometheus-метрики сервиса: HTTP, база данных и доменные счетчики
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов сервиса.
// Все методы записи безопасны для nil-получателя: метрики могут быть выключены в конфиге
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBTransactionsTotal *prometheus.CounterVec

	SlotsGenerated      *prometheus.CounterVec
	BookingsCreated     *prometheus.CounterVec
	BookingConflicts    *prometheus.CounterVec
	RemindersDispatched *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		DBTransactionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "db_transactions_total",
			Help: "Total number of finished transactions",
		}, []string{"service", "result"}),

		SlotsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_slots_generated_total",
			Help: "Total number of bookable slots returned by availability queries",
		}, []string{"service", "mode"}),
		BookingsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of confirmed appointments created",
		}, []string{"service", "kind"}),
		BookingConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Total number of rejected bookings because the slot was taken",
		}, []string{"service", "stage"}),
		RemindersDispatched: f.NewCounterVec(prometheus.CounterOpts{
			Name: "reminders_dispatched_total",
			Help: "Total number of reminder delivery attempts",
		}, []string{"service", "channel", "result"}),
	}
}

// ServiceName имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(d.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

func (m *Metrics) IncTransaction(result string) {
	if m == nil {
		return
	}
	m.DBTransactionsTotal.WithLabelValues(m.serviceName, result).Inc()
}

// AddSlotsGenerated mode: professional или legacy
func (m *Metrics) AddSlotsGenerated(mode string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SlotsGenerated.WithLabelValues(m.serviceName, mode).Add(float64(n))
}

// IncBookingCreated kind: create или reschedule
func (m *Metrics) IncBookingCreated(kind string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.serviceName, kind).Inc()
}

// IncBookingConflict stage: guard (слот не прошел проверку) или insert (уникальный индекс)
func (m *Metrics) IncBookingConflict(stage string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.serviceName, stage).Inc()
}

func (m *Metrics) IncReminderDispatched(channel, result string) {
	if m == nil {
		return
	}
	m.RemindersDispatched.WithLabelValues(m.serviceName, channel, result).Inc()
}
