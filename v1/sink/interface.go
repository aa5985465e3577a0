package sink

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/qdrant-sink/v1/record"
)

//go:generate mockgen -source=interface.go -destination=mock_interface.go -package=sink

// Upserter writes points into a collection. A single call either applies all
// points or fails as a whole.
type Upserter interface {
	Upsert(ctx context.Context, collection string, points []record.Point) error
}

// ErrorReporter receives records that could not be written, together with the
// cause. Returning an error aborts the batch.
type ErrorReporter interface {
	Report(ctx context.Context, rec Record, cause error) error
}

// Tracer opens spans around batches and upserts.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}
