package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Logger is the logging interface used by the consumer and the dead letter reporter.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// NewReader creates a consumer group reader subscribed to all configured topics.
//
// Offsets are never committed in the background: the reader is created with a
// zero commit interval so that the consumer commits each batch explicitly once
// the sink has accepted it.
//
// Example:
//
//	reader, err := kafka.NewReader(cfg, log)
//	if err != nil {
//		return err
//	}
//	consumer := kafka.NewConsumer(cfg, reader, s, log)
func NewReader(cfg Config, logger Logger) (*kafka.Reader, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("[Kafka] %w", err)
	}

	dialer, err := createDialer(cfg)
	if err != nil {
		return nil, err
	}

	readerConfig := kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		MaxWait:        cfg.MaxWait,
		StartOffset:    cfg.StartOffset,
		CommitInterval: 0,
		ErrorLogger:    createErrorLogger(logger),
		Dialer:         dialer,
	}
	if len(cfg.Topics) == 1 {
		readerConfig.Topic = cfg.Topics[0]
	} else {
		readerConfig.GroupTopics = cfg.Topics
	}

	log.Printf("INFO: Kafka consumer initialized (group=%s, topics=%v)", cfg.GroupID, cfg.Topics)
	return kafka.NewReader(readerConfig), nil
}

// newDeadLetterWriter creates the writer publishing to the dead letter topic.
func newDeadLetterWriter(cfg Config, logger Logger) (*kafka.Writer, error) {
	dialer, err := createDialer(cfg)
	if err != nil {
		return nil, err
	}

	dl := cfg.DeadLetter
	writerConfig := kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        dl.Topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  dl.MaxAttempts,
		WriteTimeout: dl.WriteTimeout,
		RequiredAcks: dl.RequiredAcks,
		ErrorLogger:  createErrorLogger(logger),
		Dialer:       dialer,
	}

	switch dl.CompressionCodec {
	case "gzip":
		writerConfig.CompressionCodec = &compress.GzipCodec
	case "snappy":
		writerConfig.CompressionCodec = &compress.SnappyCodec
	case "lz4":
		writerConfig.CompressionCodec = &compress.Lz4Codec
	case "zstd":
		writerConfig.CompressionCodec = &compress.ZstdCodec
	}

	log.Printf("INFO: Kafka dead letter producer initialized (topic=%s)", dl.Topic)
	return kafka.NewWriter(writerConfig), nil
}

// createDialer builds a dialer carrying the TLS and SASL settings.
func createDialer(cfg Config) (*kafka.Dialer, error) {
	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("[Kafka] failed to create TLS config: %w", err)
		}
	}

	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("[Kafka] failed to create SASL mechanism: %w", err)
		}
	}

	return &kafka.Dialer{
		Timeout:       kafka.DefaultDialer.Timeout,
		DualStack:     true,
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}, nil
}

// createErrorLogger routes kafka-go's internal errors to the logger
func createErrorLogger(logger Logger) kafka.LoggerFunc {
	if logger != nil {
		return kafka.LoggerFunc(func(msg string, args ...interface{}) {
			formattedMsg := msg
			if len(args) > 0 {
				formattedMsg = fmt.Sprintf(msg, args...)
			}
			logger.Error("Kafka internal error", nil, map[string]interface{}{
				"error": formattedMsg,
			})
		})
	}

	return kafka.LoggerFunc(func(msg string, args ...interface{}) {
		log.Printf("KAFKA ERROR: "+msg, args...)
	})
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// createSASLMechanism creates a SASL mechanism from the provided config
func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case SASLPlain:
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case SASLScramSHA256:
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case SASLScramSHA512:
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSASLMechanism, cfg.Mechanism)
	}
}
