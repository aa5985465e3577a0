package metrics

import (
	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
)

// SinkObserver turns operation notifications from the sink, the Qdrant client
// and the Kafka consumer into Prometheus metrics.
type SinkObserver struct {
	collector MetricsCollector
}

// NewSinkObserver creates an observer recording into collector.
func NewSinkObserver(collector MetricsCollector) *SinkObserver {
	return &SinkObserver{collector: collector}
}

// ObserveOperation implements observability.Observer.
func (o *SinkObserver) ObserveOperation(ctx observability.OperationContext) {
	o.collector.RecordOperation(ctx.Component, ctx.Operation, ctx.Duration, ctx.Size, ctx.Error)
	if ctx.Operation == "reject" {
		o.collector.RecordRejection(ctx.Metadata["kind"])
	}
}
