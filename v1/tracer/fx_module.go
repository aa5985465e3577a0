package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides a Uber FX module that configures distributed tracing for the sink.
//
// The module:
// 1. Provides the tracer client through the NewClient constructor
// 2. Registers shutdown hooks to flush pending spans on application termination
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(tracer.Config{ServiceName: "qdrant-sink"}),
//	    fx.Provide(func(l *logger.Logger) tracer.Logger { return l }),
//	    tracer.FXModule,
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the FX lifecycle.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("shutting down tracer...", nil)
			return tracer.Shutdown(ctx)
		},
	})
}
