package sink

import (
	"time"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
func (s *Sink) observeOperation(operation, resource string, duration time.Duration, err error, size int64, metadata map[string]string) {
	if s.observer != nil {
		s.observer.ObserveOperation(observability.OperationContext{
			Component: "sink",
			Operation: operation,
			Resource:  resource,
			Duration:  duration,
			Error:     err,
			Size:      size,
			Metadata:  metadata,
		})
	}
}
