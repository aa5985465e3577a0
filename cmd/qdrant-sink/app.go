package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/qdrant-sink/v1/config"
	"github.com/Aleph-Alpha/qdrant-sink/v1/kafka"
	"github.com/Aleph-Alpha/qdrant-sink/v1/logger"
	"github.com/Aleph-Alpha/qdrant-sink/v1/metrics"
	"github.com/Aleph-Alpha/qdrant-sink/v1/qdrant"
	"github.com/Aleph-Alpha/qdrant-sink/v1/schema_registry"
	"github.com/Aleph-Alpha/qdrant-sink/v1/sink"
	"github.com/Aleph-Alpha/qdrant-sink/v1/tracer"
)

// appOptions composes the application: Kafka feeds the sink and the sink
// writes through the Qdrant client. Wire format decoding and metrics are
// added when enabled.
func appOptions(cfg *config.Config) fx.Option {
	options := []fx.Option{
		fx.Supply(
			cfg.Logger,
			cfg.Tracer,
			&cfg.Qdrant,
			cfg.Kafka,
			cfg.Sink,
		),
		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),

		fx.Provide(
			func(l *logger.Logger) sink.Logger { return l },
			func(l *logger.Logger) kafka.Logger { return l },
			func(l *logger.Logger) tracer.Logger { return l },
			func(c *qdrant.QdrantClient) sink.Upserter { return c },
			func(t *tracer.Tracer) sink.Tracer { return t },
			func(t *tracer.Tracer) kafka.Propagator { return t },
			func(s *sink.Sink) kafka.BatchProcessor { return s },
		),

		logger.FXModule,
		tracer.FXModule,
		qdrant.FXModule,
		sink.FXModule,
		kafka.FXModule,
	}

	if cfg.SchemaRegistry.Enabled {
		options = append(options,
			fx.Supply(cfg.SchemaRegistry),
			fx.Provide(
				func(l *logger.Logger) schema_registry.Logger { return l },
				func(d *schema_registry.Decoder) kafka.ValueDecoder { return d },
			),
			schema_registry.FXModule,
		)
	}

	if cfg.Metrics.Enabled {
		options = append(options,
			fx.Supply(cfg.Metrics.Server),
			metrics.FXModule,
		)
	}

	return fx.Options(options...)
}
