package kafka

import (
	"time"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
func (c *Consumer) observeOperation(operation, topic string, duration time.Duration, err error, size int64) {
	notify(c.observer, operation, topic, duration, err, size)
}

func notify(observer observability.Observer, operation, topic string, duration time.Duration, err error, size int64) {
	if observer == nil {
		return
	}
	observer.ObserveOperation(observability.OperationContext{
		Component: "kafka",
		Operation: operation,
		Resource:  topic,
		Duration:  duration,
		Error:     err,
		Size:      size,
	})
}
