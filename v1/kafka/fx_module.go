package kafka

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
	"github.com/Aleph-Alpha/qdrant-sink/v1/sink"
)

// FXModule defines the Fx module for the Kafka side of the sink.
//
// The module:
//  1. Provides the consumer group Reader built from Config.
//  2. Provides a sink.ErrorReporter backed by the dead letter topic when one is
//     configured. With no dead letter topic the reporter is nil and the sink
//     treats every failure as fatal for its batch.
//  3. Provides the Consumer and runs it in the background for the lifetime of
//     the application.
//
// Dependencies required by this module:
//   - a kafka.Config
//   - a kafka.Logger
//   - a kafka.BatchProcessor, normally the *sink.Sink
//
// A kafka.ValueDecoder, a kafka.Propagator and an observability.Observer are
// used when provided.
//
// A fatal batch error shuts the application down with a non-zero exit code.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(cfg.Kafka),
//	    fx.Provide(func(s *sink.Sink) kafka.BatchProcessor { return s }),
//	    kafka.FXModule,
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewReaderWithParams,
		NewDeadLetterWithParams,
		NewConsumerWithParams,
	),
	fx.Invoke(RegisterConsumerLifecycle),
)

// ReaderParams groups the dependencies of NewReaderWithParams.
type ReaderParams struct {
	fx.In

	Config Config
	Logger Logger
}

// NewReaderWithParams creates the consumer group reader from injected dependencies.
func NewReaderWithParams(p ReaderParams) (Reader, error) {
	return NewReader(p.Config, p.Logger)
}

// DeadLetterParams groups the dependencies of NewDeadLetterWithParams.
type DeadLetterParams struct {
	fx.In

	Config   Config
	Logger   Logger
	Observer observability.Observer `optional:"true"`
}

// DeadLetterResult exposes the dead letter reporter both as its concrete type
// and as the sink's ErrorReporter. Both are nil when dead lettering is disabled.
type DeadLetterResult struct {
	fx.Out

	DeadLetter *DeadLetterReporter
	Reporter   sink.ErrorReporter
}

// NewDeadLetterWithParams creates the dead letter reporter if a topic is configured.
func NewDeadLetterWithParams(p DeadLetterParams) (DeadLetterResult, error) {
	if !p.Config.DeadLetter.Enabled() {
		p.Logger.Info("no dead letter topic configured, failed records stop the consumer", nil)
		return DeadLetterResult{}, nil
	}

	reporter, err := NewDeadLetterReporter(p.Config, p.Logger)
	if err != nil {
		return DeadLetterResult{}, err
	}
	if p.Observer != nil {
		reporter.WithObserver(p.Observer)
	}
	return DeadLetterResult{DeadLetter: reporter, Reporter: reporter}, nil
}

// ConsumerParams groups the dependencies of NewConsumerWithParams.
type ConsumerParams struct {
	fx.In

	Config     Config
	Reader     Reader
	Processor  BatchProcessor
	Logger     Logger
	Propagator Propagator             `optional:"true"`
	Observer   observability.Observer `optional:"true"`
	Decoder    ValueDecoder           `optional:"true"`
}

// NewConsumerWithParams creates a Consumer from injected dependencies.
func NewConsumerWithParams(p ConsumerParams) *Consumer {
	c := NewConsumer(p.Config, p.Reader, p.Processor, p.Logger)
	if p.Propagator != nil {
		c.WithPropagator(p.Propagator)
	}
	if p.Observer != nil {
		c.WithObserver(p.Observer)
	}
	if p.Decoder != nil {
		c.WithValueDecoder(p.Decoder)
	}
	return c
}

// ConsumerLifecycleParams groups the dependencies of RegisterConsumerLifecycle.
type ConsumerLifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Consumer   *Consumer
	Reader     Reader
	DeadLetter *DeadLetterReporter `optional:"true"`
	Logger     Logger
}

// RegisterConsumerLifecycle runs the consumer between application start and stop.
//
// On start the consumer is launched in a background goroutine. On stop its
// context is cancelled, the goroutine is awaited, and the reader and the dead
// letter writer are closed.
func RegisterConsumerLifecycle(p ConsumerLifecycleParams) {
	var (
		wg     sync.WaitGroup
		cancel context.CancelFunc
	)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.Background())

			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := p.Consumer.Run(runCtx); err != nil {
					p.Logger.Error("kafka consumer failed", err)
					if shutdownErr := p.Shutdowner.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
						p.Logger.Error("failed to trigger shutdown", shutdownErr)
					}
				}
			}()

			p.Logger.Info("kafka consumer started", nil)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-ctx.Done():
				p.Logger.Warn("timed out waiting for kafka consumer to stop", ctx.Err())
			}

			var firstErr error
			if err := p.Reader.Close(); err != nil {
				p.Logger.Error("failed to close kafka reader", err)
				firstErr = err
			}
			if p.DeadLetter != nil {
				if err := p.DeadLetter.Close(); err != nil {
					p.Logger.Error("failed to close dead letter writer", err)
					if firstErr == nil {
						firstErr = err
					}
				}
			}
			return firstErr
		},
	})
}
