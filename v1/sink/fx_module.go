package sink

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
)

// FXModule provides a *Sink built from the Upserter, Logger and Config in the
// container. An ErrorReporter, Tracer and observability.Observer are picked up
// when the application provides them.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(sink.Config{CollectionName: "docs"}),
//	    fx.Provide(func(c *qdrant.QdrantClient) sink.Upserter { return c }),
//	    sink.FXModule,
//	)
var FXModule = fx.Module("sink",
	fx.Provide(
		NewSinkWithParams,
	),
)

// SinkParams groups the dependencies of NewSinkWithParams.
type SinkParams struct {
	fx.In

	Config   Config
	Upserter Upserter
	Logger   Logger
	Reporter ErrorReporter          `optional:"true"`
	Tracer   Tracer                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewSinkWithParams creates a Sink from injected dependencies.
func NewSinkWithParams(p SinkParams) *Sink {
	s := NewSink(p.Config, p.Upserter, p.Logger)
	if p.Reporter != nil {
		s.WithErrorReporter(p.Reporter)
	}
	if p.Tracer != nil {
		s.WithTracer(p.Tracer)
	}
	if p.Observer != nil {
		s.WithObserver(p.Observer)
	}
	return s
}
