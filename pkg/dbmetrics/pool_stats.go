package dbmetrics

import (
	"database/sql"
	"time"

	"github.com/m04kA/ClinicBookingService/pkg/metrics"
)

// DefaultPoolStatsInterval период снятия статистики пула соединений
const DefaultPoolStatsInterval = 15 * time.Second

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// Сбор останавливается закрытием stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	var collector Collector
	if m != nil {
		collector = m
		go collectPoolStats(db, m, DefaultPoolStatsInterval, stopCh)
	}
	return Wrap(db, collector)
}

func collectPoolStats(db *sql.DB, m *metrics.Metrics, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		recordPoolStats(db.Stats(), m)
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

func recordPoolStats(stats sql.DBStats, m *metrics.Metrics) {
	service := m.ServiceName()
	m.DBOpenConnections.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.DBInUseConnections.WithLabelValues(service).Set(float64(stats.InUse))
	m.DBIdleConnections.WithLabelValues(service).Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues(service).Set(float64(stats.WaitCount))
}
