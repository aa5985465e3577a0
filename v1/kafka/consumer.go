package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
	"github.com/Aleph-Alpha/qdrant-sink/v1/sink"
	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

// Reader is the part of *kafka.Reader the consumer depends on.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BatchProcessor handles one batch of records. *sink.Sink satisfies it.
type BatchProcessor interface {
	Process(ctx context.Context, batch []sink.Record) (*sink.BatchReport, error)
}

// Propagator restores a trace context from message headers.
type Propagator interface {
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context
}

// ValueDecoder unwraps message values before they reach the processor.
// An error wrapping value.ErrMalformedInput rejects that one record; any
// other error fails the whole batch.
type ValueDecoder interface {
	Decode(ctx context.Context, data []byte) ([]byte, error)
}

// Consumer reads messages from a consumer group, hands them to a
// BatchProcessor in batches and commits each batch once it was processed.
//
// Fetching runs concurrently with processing, but batches are processed
// strictly one after another.
type Consumer struct {
	cfg        Config
	reader     Reader
	processor  BatchProcessor
	logger     Logger
	propagator Propagator
	observer   observability.Observer
	decoder    ValueDecoder
}

// NewConsumer creates a consumer. Zero batch settings in cfg are replaced by defaults.
func NewConsumer(cfg Config, reader Reader, processor BatchProcessor, logger Logger) *Consumer {
	return &Consumer{
		cfg:       cfg.WithDefaults(),
		reader:    reader,
		processor: processor,
		logger:    logger,
	}
}

// WithPropagator continues traces carried in message headers.
func (c *Consumer) WithPropagator(propagator Propagator) *Consumer {
	c.propagator = propagator
	return c
}

// WithValueDecoder decodes every non-empty message value with decoder.
func (c *Consumer) WithValueDecoder(decoder ValueDecoder) *Consumer {
	c.decoder = decoder
	return c
}

// WithObserver attaches an observer that is notified about every batch.
func (c *Consumer) WithObserver(observer observability.Observer) *Consumer {
	c.observer = observer
	return c
}

// Run consumes until ctx is cancelled or a batch fails.
//
// A batch is flushed when it holds BatchSize messages or when BatchTimeout has
// passed since its first message arrived. Its offsets are committed only when
// the processor returns no error, unless CommitOnFailure is set. Cancelling
// ctx returns nil; the batch being accumulated at that moment is dropped
// uncommitted and will be delivered again.
func (c *Consumer) Run(ctx context.Context) error {
	messages := make(chan kafka.Message, c.cfg.BatchSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(messages)
		return c.fetch(gctx, messages)
	})
	g.Go(func() error {
		return c.consume(gctx, messages)
	})

	err := g.Wait()
	if ctx.Err() != nil && errors.Is(err, context.Canceled) {
		c.logger.Info("kafka consumer stopped", nil)
		return nil
	}
	return err
}

func (c *Consumer) fetch(ctx context.Context, out chan<- kafka.Message) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("[Kafka] %w: %w", ErrFetchFailed, err)
		}

		select {
		case out <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, in <-chan kafka.Message) error {
	batch := make([]kafka.Message, 0, c.cfg.BatchSize)
	var deadline <-chan time.Time

	flush := func() error {
		err := c.flush(ctx, batch)
		batch = make([]kafka.Message, 0, c.cfg.BatchSize)
		deadline = nil
		return err
	}

	for {
		select {
		case msg, ok := <-in:
			if !ok {
				// The fetcher stopped; its error is reported by the group.
				return nil
			}
			if len(batch) == 0 {
				deadline = time.After(c.cfg.BatchTimeout)
			}
			batch = append(batch, msg)
			if len(batch) >= c.cfg.BatchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		case <-deadline:
			if err := flush(); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// flush processes and commits one batch.
func (c *Consumer) flush(ctx context.Context, msgs []kafka.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	traceCtx := c.traceContext(ctx, msgs[0])
	records := make([]sink.Record, len(msgs))
	for i, m := range msgs {
		rec, err := c.decode(traceCtx, m)
		if err != nil {
			c.logger.Error("failed to decode message, stopping consumer", err, map[string]interface{}{
				"topic":     m.Topic,
				"partition": m.Partition,
				"offset":    m.Offset,
			})
			return fmt.Errorf("[Kafka] %w: %w", ErrDecodeFailed, err)
		}
		records[i] = rec
	}

	start := time.Now()
	report, err := c.processor.Process(traceCtx, records)
	c.observeOperation("consume_batch", msgs[0].Topic, time.Since(start), err, int64(len(msgs)))

	fields := map[string]interface{}{
		"records":      len(msgs),
		"first_offset": msgs[0].Offset,
		"last_offset":  msgs[len(msgs)-1].Offset,
	}
	if err != nil {
		if !c.cfg.CommitOnFailure {
			c.logger.Error("batch processing failed, stopping consumer", err, fields)
			return fmt.Errorf("[Kafka] %w: %w", ErrBatchFailed, err)
		}
		c.logger.Warn("batch processing failed, committing offsets anyway", err, fields)
	} else if report != nil {
		fields["failed"] = len(report.Failed())
	}

	if err := c.reader.CommitMessages(ctx, msgs...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("[Kafka] %w: %w", ErrCommitFailed, err)
	}

	c.logger.Debug("batch committed", nil, fields)
	return nil
}

// traceContext continues the trace carried by the first message of a batch.
func (c *Consumer) traceContext(ctx context.Context, msg kafka.Message) context.Context {
	if c.propagator == nil || len(msg.Headers) == 0 {
		return ctx
	}
	return c.propagator.SetCarrierOnContext(ctx, headersToMap(msg.Headers))
}

// decode converts a message into a record, running the value decoder if one
// is configured. Only errors that are not about the message itself are
// returned.
func (c *Consumer) decode(ctx context.Context, m kafka.Message) (sink.Record, error) {
	rec := toRecord(m)
	if c.decoder == nil || rec.Value == nil {
		return rec, nil
	}

	payload, err := c.decoder.Decode(ctx, m.Value)
	switch {
	case errors.Is(err, value.ErrMalformedInput):
		rec.Value = nil
		rec.DecodeErr = err
	case err != nil:
		return rec, err
	case len(payload) == 0:
		rec.Value = nil
	default:
		rec.Value = payload
	}
	return rec, nil
}

// toRecord converts a message into a sink record. Tombstones and empty
// values become records with a nil value.
func toRecord(m kafka.Message) sink.Record {
	rec := sink.Record{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Headers:   headersToMap(m.Headers),
	}
	if len(m.Value) > 0 {
		rec.Value = m.Value
		rec.Raw = m.Value
	}
	return rec
}

func headersToMap(headers []kafka.Header) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for _, h := range headers {
		out[h.Key] = string(h.Value)
	}
	return out
}
