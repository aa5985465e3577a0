// Package kafka feeds the sink from Apache Kafka.
//
// The package joins a consumer group, collects messages into batches, hands
// each batch to the sink and commits the batch's offsets once the sink has
// accepted it. Records the sink cannot write can be published to a dead
// letter topic instead of stopping the consumer.
//
// Core Features:
//   - Consumer group subscription to one or more topics
//   - Batching by size and by age of the oldest buffered message
//   - Explicit offset commits after each successfully processed batch
//   - Dead letter publishing with error and source headers
//   - TLS and SASL (PLAIN, SCRAM-SHA-256, SCRAM-SHA-512)
//   - Trace continuation from message headers
//   - Optional value decoding, e.g. stripping Confluent wire format frames
//   - Observer hooks for batch and dead letter metrics
//
// Basic Usage:
//
//	reader, err := kafka.NewReader(cfg, log)
//	if err != nil {
//		return err
//	}
//	defer reader.Close()
//
//	reporter, err := kafka.NewDeadLetterReporter(cfg, log)
//	if err != nil {
//		return err
//	}
//	defer reporter.Close()
//
//	s := sink.NewSink(sinkCfg, qdrantClient, log).WithErrorReporter(reporter)
//
//	consumer := kafka.NewConsumer(cfg, reader, s, log)
//	if err := consumer.Run(ctx); err != nil {
//		log.Error("consumer stopped", err)
//	}
//
// Delivery Semantics:
//
// Offsets are committed per batch after Process returns nil, so records are
// delivered at least once. When Process fails the consumer stops without
// committing, and the batch is delivered again after a restart. Setting
// CommitOnFailure commits failed batches as well and keeps consuming.
//
// Message Conversion:
//
// A message becomes a sink.Record with the message value as textual JSON.
// Tombstones and empty values become records with a nil value, which the sink
// skips. Message headers are copied into Record.Headers.
//
// Dead Letter Headers:
//
//	x-error-message     the error the record failed with
//	x-error-kind        the sink.ErrorKind, e.g. "invalid_vector" or "transport"
//	x-source-topic      topic of the original message
//	x-source-partition  partition of the original message
//	x-source-offset     offset of the original message
//
// Configuration:
//
//	kafka:
//	  brokers: ["localhost:9092"]
//	  topics: ["embeddings"]
//	  group_id: "qdrant-sink"
//	  batch_size: 500
//	  batch_timeout: 1s
//	  sasl:
//	    enabled: true
//	    mechanism: "SCRAM-SHA-512"
//	    username: "sink"
//	    password: "secret"
//	  dead_letter:
//	    topic: "embeddings-dlq"
//
// FX Module Integration:
//
//	app := fx.New(
//	    fx.Supply(cfg.Kafka),
//	    fx.Provide(func(s *sink.Sink) kafka.BatchProcessor { return s }),
//	    kafka.FXModule,
//	)
package kafka
