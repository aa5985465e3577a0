package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing the sink's metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	// registerer adds the service label to everything registered through it.
	registerer prometheus.Registerer
	namespace  string

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationItems    *prometheus.CounterVec
	rejectedRecords   *prometheus.CounterVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers the sink metrics and
// optionally the default system collectors, wraps all metrics with a constant
// `service` label, and creates an HTTP server exposing the /metrics endpoint.
//
// The sink metrics are:
//   - operations_total{component, operation, status}
//   - operation_duration_seconds{component, operation}
//   - operation_items_total{component, operation}
//   - rejected_records_total{kind}
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    Namespace:   "qdrant_sink",
//	    ServiceName: "qdrant-sink",
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service carry service="<cfg.ServiceName>".
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		registerer: wrappedRegistry,
		namespace:  cfg.Namespace,
	}

	m.operationsTotal = m.newCounterVec("operations_total", "Total number of operations by component and status", []string{"component", "operation", "status"})
	m.operationDuration = m.newHistogramVec("operation_duration_seconds", "Duration of operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.operationItems = m.newCounterVec("operation_items_total", "Number of records or points handled by operations", []string{"component", "operation"})
	m.rejectedRecords = m.newCounterVec("rejected_records_total", "Records that could not be turned into points, by error kind", []string{"kind"})

	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.operationItems,
		m.rejectedRecords,
	)

	// Go runtime, process and build info collectors.
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
