package sink

import (
	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
	"github.com/Aleph-Alpha/qdrant-sink/v1/record"
)

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=sink

// Logger is the logging interface used by the sink.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Sink turns batches of raw records into points and writes them, one upsert
// per destination collection.
//
// A Sink processes one batch at a time and holds no state between batches.
type Sink struct {
	cfg      Config
	upserter Upserter
	reporter ErrorReporter
	logger   Logger
	tracer   Tracer
	observer observability.Observer
}

// NewSink creates a sink writing through upserter. Without a reporter, every
// record or upsert failure is fatal for its batch.
func NewSink(cfg Config, upserter Upserter, logger Logger) *Sink {
	return &Sink{
		cfg:      cfg,
		upserter: upserter,
		logger:   logger,
	}
}

// WithErrorReporter routes failed records to reporter instead of failing the batch.
//
// Example:
//
//	s := sink.NewSink(cfg, qdrantClient, log).
//	    WithErrorReporter(deadLetter).
//	    WithObserver(metricsObserver)
func (s *Sink) WithErrorReporter(reporter ErrorReporter) *Sink {
	s.reporter = reporter
	return s
}

// WithTracer enables spans for batches and upserts.
func (s *Sink) WithTracer(tracer Tracer) *Sink {
	s.tracer = tracer
	return s
}

// WithObserver attaches an observer for batch, record and upsert operations.
func (s *Sink) WithObserver(observer observability.Observer) *Sink {
	s.observer = observer
	return s
}

func (s *Sink) extractOptions() []record.Option {
	if s.cfg.CollectionName == "" {
		return nil
	}
	return []record.Option{record.WithCollectionOverride(s.cfg.CollectionName)}
}
