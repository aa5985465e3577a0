// Package tracer provides distributed tracing using OpenTelemetry.
//
// The sink opens a span per batch and per collection upsert; the Kafka
// consumer continues traces carried in message headers, so a record's
// producer and its upsert into Qdrant appear in the same trace.
//
// Core Features:
//   - Span creation with error recording and status tracking
//   - Attribute conversion from plain Go maps
//   - W3C trace context and baggage propagation through header maps
//   - Optional OTLP/HTTP export and ratio based sampling
//
// Basic Usage:
//
//	t, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "qdrant-sink",
//		AppEnv:       "production",
//		EnableExport: true,
//		Endpoint:     "otel-collector:4318",
//		Insecure:     true,
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer t.Shutdown(ctx)
//
//	ctx, span := t.StartSpan(ctx, "sink.process_batch")
//	defer span.End()
//	t.SetAttributes(span, map[string]interface{}{"batch.size": 500})
//
// Continuing a trace from message headers:
//
//	ctx = t.SetCarrierOnContext(ctx, record.Headers)
//
// FX Module Integration:
//
//	app := fx.New(
//		fx.Supply(tracer.Config{ServiceName: "qdrant-sink"}),
//		tracer.FXModule,
//	)
//
// The module shuts the provider down on stop, flushing pending spans.
package tracer
