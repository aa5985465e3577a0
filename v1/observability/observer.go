package observability

import "time"

// Observer receives a notification for every operation performed by an
// instrumented component. Implementations must be safe for concurrent use and
// should return quickly.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a completed operation.
type OperationContext struct {
	// Component is the package reporting the operation, e.g. "sink" or "qdrant".
	Component string

	// Operation is the action performed, e.g. "upsert" or "process_batch".
	Operation string

	// Resource is the primary target, such as a collection or a topic.
	Resource string

	// SubResource narrows Resource, such as a partition.
	SubResource string

	Duration time.Duration

	// Error is nil when the operation succeeded.
	Error error

	// Size is the number of items or bytes handled, depending on the operation.
	Size int64

	Metadata map[string]string
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
