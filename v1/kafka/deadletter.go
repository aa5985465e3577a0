package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
	"github.com/Aleph-Alpha/qdrant-sink/v1/sink"
	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

// Headers added to every dead letter message.
const (
	HeaderErrorMessage    = "x-error-message"
	HeaderErrorKind       = "x-error-kind"
	HeaderSourceTopic     = "x-source-topic"
	HeaderSourcePartition = "x-source-partition"
	HeaderSourceOffset    = "x-source-offset"
)

// messageWriter is the part of *kafka.Writer the reporter depends on.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DeadLetterReporter publishes records the sink could not write to a dead
// letter topic. It implements sink.ErrorReporter.
//
// The original key and value are kept. The original headers are copied and
// extended with the error message, the error kind and the source position.
type DeadLetterReporter struct {
	writer   messageWriter
	topic    string
	logger   Logger
	observer observability.Observer
}

// NewDeadLetterReporter creates a reporter writing to cfg.DeadLetter.Topic.
func NewDeadLetterReporter(cfg Config, logger Logger) (*DeadLetterReporter, error) {
	cfg = cfg.WithDefaults()
	if !cfg.DeadLetter.Enabled() {
		return nil, fmt.Errorf("[Kafka] %w: dead letter topic is empty", ErrInvalidConfig)
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("[Kafka] %w", ErrNoBrokers)
	}

	writer, err := newDeadLetterWriter(cfg, logger)
	if err != nil {
		return nil, err
	}
	return newDeadLetterReporter(writer, cfg.DeadLetter.Topic, logger), nil
}

func newDeadLetterReporter(writer messageWriter, topic string, logger Logger) *DeadLetterReporter {
	return &DeadLetterReporter{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// WithObserver attaches an observer that is notified about every publish.
func (d *DeadLetterReporter) WithObserver(observer observability.Observer) *DeadLetterReporter {
	d.observer = observer
	return d
}

// Report publishes rec together with the reason it failed. The original
// message bytes are published when the record carries them.
func (d *DeadLetterReporter) Report(ctx context.Context, rec sink.Record, cause error) error {
	payload := rec.Raw
	if payload == nil {
		payload = encodeValue(rec.Value)
	}
	msg := kafka.Message{
		Key:     rec.Key,
		Value:   payload,
		Headers: deadLetterHeaders(rec, cause),
	}

	start := time.Now()
	err := d.writer.WriteMessages(ctx, msg)
	notify(d.observer, "dead_letter", d.topic, time.Since(start), err, 1)
	if err != nil {
		return fmt.Errorf("[Kafka] %w (topic=%s, source=%s): %w", ErrPublishFailed, d.topic, rec, err)
	}

	d.logger.Debug("record sent to dead letter topic", nil, map[string]interface{}{
		"topic":  d.topic,
		"source": rec.String(),
		"kind":   string(sink.ClassifyError(cause)),
	})
	return nil
}

// Close flushes and closes the writer.
func (d *DeadLetterReporter) Close() error {
	return d.writer.Close()
}

func deadLetterHeaders(rec sink.Record, cause error) []kafka.Header {
	headers := make([]kafka.Header, 0, len(rec.Headers)+5)
	for k, v := range rec.Headers {
		switch k {
		case HeaderErrorMessage, HeaderErrorKind, HeaderSourceTopic, HeaderSourcePartition, HeaderSourceOffset:
			continue
		}
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	message := ""
	if cause != nil {
		message = cause.Error()
	}
	return append(headers,
		kafka.Header{Key: HeaderErrorMessage, Value: []byte(message)},
		kafka.Header{Key: HeaderErrorKind, Value: []byte(sink.ClassifyError(cause))},
		kafka.Header{Key: HeaderSourceTopic, Value: []byte(rec.Topic)},
		kafka.Header{Key: HeaderSourcePartition, Value: []byte(strconv.Itoa(rec.Partition))},
		kafka.Header{Key: HeaderSourceOffset, Value: []byte(strconv.FormatInt(rec.Offset, 10))},
	)
}

// encodeValue renders a record value as message bytes. Textual values are
// kept as they are; in-memory values are encoded as JSON.
func encodeValue(v interface{}) []byte {
	switch v := v.(type) {
	case nil:
		return nil
	case []byte:
		return v
	case json.RawMessage:
		return v
	case string:
		return []byte(v)
	}

	if tree, err := value.FromNative(v); err == nil {
		if b, err := json.Marshal(tree.Interface()); err == nil {
			return b
		}
	}
	return []byte(fmt.Sprintf("%v", v))
}
