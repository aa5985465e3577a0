package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{}) {}

func recordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return newTracer(tp, nopLogger{}), recorder
}

func attributeMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value
	}
	return out
}

func TestStartSpanAndAttributes(t *testing.T) {
	tr, recorder := recordingTracer(t)

	_, span := tr.StartSpan(context.Background(), "sink.process_batch")
	tr.SetAttributes(span, map[string]interface{}{
		"batch.size": 500,
		"collection": "documents",
		"offset":     int64(42),
		"ratio":      0.5,
		"wait":       true,
		"topics":     []string{"a", "b"},
		"other":      struct{ X int }{1},
	})
	tr.RecordErrorOnSpan(span, errors.New("upsert failed"))
	tr.RecordErrorOnSpan(span, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "sink.process_batch", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "upsert failed", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)

	attrs := attributeMap(spans[0].Attributes())
	assert.Equal(t, int64(500), attrs["batch.size"].AsInt64())
	assert.Equal(t, "documents", attrs["collection"].AsString())
	assert.Equal(t, int64(42), attrs["offset"].AsInt64())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	assert.True(t, attrs["wait"].AsBool())
	assert.Equal(t, []string{"a", "b"}, attrs["topics"].AsStringSlice())
	assert.Equal(t, "{1}", attrs["other"].AsString())
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, recorder := recordingTracer(t)

	ctx, parent := tr.StartSpan(context.Background(), "producer")
	carrier := tr.GetCarrier(ctx)
	parent.End()
	require.Contains(t, carrier, "traceparent")

	restored := tr.SetCarrierOnContext(context.Background(), carrier)
	_, child := tr.StartSpan(restored, "consumer")
	child.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[0].SpanContext().TraceID(), spans[1].SpanContext().TraceID())
	assert.Equal(t, spans[0].SpanContext().SpanID(), spans[1].Parent().SpanID())
}

func TestSetAttributesIgnoresEmpty(t *testing.T) {
	tr, recorder := recordingTracer(t)
	_, span := tr.StartSpan(context.Background(), "empty")
	tr.SetAttributes(span, nil)
	span.End()
	assert.Empty(t, recorder.Ended()[0].Attributes())
}

func TestFXModule(t *testing.T) {
	var tr *Tracer
	app := fxtest.New(t,
		fx.Supply(Config{ServiceName: "qdrant-sink", AppEnv: "test", SampleRatio: 0.5}),
		fx.Provide(func() Logger { return nopLogger{} }),
		FXModule,
		fx.Populate(&tr),
	)
	require.NoError(t, app.Start(context.Background()))
	require.NotNil(t, tr)
	app.RequireStop()
}
