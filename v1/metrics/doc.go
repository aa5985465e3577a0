// Package metrics provides Prometheus metrics for the sink.
//
// The package owns an isolated Prometheus registry whose metrics all carry a
// constant "service" label, serves it on /metrics, and converts observability
// notifications from the other packages into counters and histograms.
//
// # Architecture
//
//   - MetricsCollector interface: the recording contract
//   - Metrics struct: concrete implementation backed by the registry
//   - SinkObserver: observability.Observer recording through a MetricsCollector
//   - FX module: provides all three and runs the HTTP server
//
// # Recorded Metrics
//
//	operations_total{component, operation, status}
//	operation_duration_seconds{component, operation}
//	operation_items_total{component, operation}
//	rejected_records_total{kind}
//
// Components are "sink", "qdrant" and "kafka". The sink reports process_batch,
// skip, reject and upsert; the Qdrant client reports upsert; the consumer
// reports consume_batch and dead_letter.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		Namespace:   "qdrant_sink",
//		ServiceName: "qdrant-sink",
//	})
//	go m.Server.ListenAndServe()
//
//	s := sink.NewSink(cfg, client, log).WithObserver(metrics.NewSinkObserver(m))
//
// # Custom Metrics
//
//	counter := m.CreateCounter("dead_letters_total", "Dead letters", []string{"topic"})
//	counter.WithLabelValues("embeddings-dlq").Inc()
//
// # Configuration
//
//	metrics:
//	  address: ":9090"
//	  namespace: "qdrant_sink"
//	  service_name: "qdrant-sink"
//	  enable_default_collectors: true
package metrics
