package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// RecordOperation counts one operation and records its duration and size.
// Example: m.RecordOperation("qdrant", "upsert", time.Since(start), 120, err)
func (m *Metrics) RecordOperation(component, operation string, duration time.Duration, items int64, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.operationsTotal.WithLabelValues(component, operation, status).Inc()
	if duration > 0 {
		m.operationDuration.WithLabelValues(component, operation).Observe(duration.Seconds())
	}
	if items > 0 {
		m.operationItems.WithLabelValues(component, operation).Add(float64(items))
	}
}

// RecordRejection counts a rejected record by error kind.
// Example: m.RecordRejection("invalid_vector")
func (m *Metrics) RecordRejection(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	m.rejectedRecords.WithLabelValues(kind).Inc()
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := m.newCounterVec(name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := m.newHistogramVec(name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
	m.registerer.MustRegister(gauge)
	return gauge
}

// newCounterVec defines a new CounterVec in the configured namespace.
func (m *Metrics) newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// newHistogramVec defines a new HistogramVec with configurable buckets.
func (m *Metrics) newHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
