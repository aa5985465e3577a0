package kafka

import (
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	// DefaultMinBytes is the minimum number of bytes a fetch request waits for.
	DefaultMinBytes = 1

	// DefaultMaxBytes is the maximum number of bytes returned by a fetch request.
	DefaultMaxBytes = 10e6 // 10MB

	// DefaultMaxWait is how long a fetch request waits for MinBytes.
	DefaultMaxWait = 1 * time.Second

	// DefaultStartOffset is used by a consumer group without committed offsets.
	DefaultStartOffset = kafka.FirstOffset

	// DefaultBatchSize is the number of records handed to the sink at once.
	DefaultBatchSize = 500

	// DefaultBatchTimeout flushes a partial batch once its first record is this old.
	DefaultBatchTimeout = 1 * time.Second

	// DefaultRequiredAcks is used by the dead letter writer.
	DefaultRequiredAcks = kafka.RequireAll

	// DefaultMaxAttempts is the number of write attempts of the dead letter writer.
	DefaultMaxAttempts = 3

	// DefaultWriteTimeout bounds a single dead letter write.
	DefaultWriteTimeout = 10 * time.Second
)

// Supported SASL mechanisms.
const (
	SASLPlain       = "PLAIN"
	SASLScramSHA256 = "SCRAM-SHA-256"
	SASLScramSHA512 = "SCRAM-SHA-512"
)

// Config defines the consumer side of the sink and its optional dead letter topic.
type Config struct {
	// Brokers is the list of bootstrap brokers, e.g. ["localhost:9092"].
	Brokers []string `yaml:"brokers"`

	// Topics is the list of topics the consumer group subscribes to.
	Topics []string `yaml:"topics"`

	// GroupID is the consumer group. Offsets are committed to this group.
	GroupID string `yaml:"group_id"`

	// BatchSize is the maximum number of records per sink batch.
	BatchSize int `yaml:"batch_size"`

	// BatchTimeout flushes a partial batch after this duration.
	BatchTimeout time.Duration `yaml:"batch_timeout"`

	MinBytes int           `yaml:"min_bytes"`
	MaxBytes int           `yaml:"max_bytes"`
	MaxWait  time.Duration `yaml:"max_wait"`

	// StartOffset is kafka.FirstOffset (-2) or kafka.LastOffset (-1).
	StartOffset int64 `yaml:"start_offset"`

	// CommitOnFailure commits the offsets of a batch even when the sink
	// returns an error, so the consumer moves on instead of stopping.
	CommitOnFailure bool `yaml:"commit_on_failure"`

	TLS        TLSConfig        `yaml:"tls"`
	SASL       SASLConfig       `yaml:"sasl"`
	DeadLetter DeadLetterConfig `yaml:"dead_letter"`
}

// TLSConfig configures TLS towards the brokers.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	CACertPath         string `yaml:"ca_cert_path"`
	ClientCertPath     string `yaml:"client_cert_path"`
	ClientKeyPath      string `yaml:"client_key_path"`
}

// SASLConfig configures SASL authentication.
type SASLConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Mechanism string `yaml:"mechanism"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

// DeadLetterConfig configures the topic failed records are published to.
// Leaving Topic empty disables dead lettering.
type DeadLetterConfig struct {
	Topic            string        `yaml:"topic"`
	RequiredAcks     int           `yaml:"required_acks"`
	MaxAttempts      int           `yaml:"max_attempts"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	CompressionCodec string        `yaml:"compression_codec"`
}

// Enabled reports whether a dead letter topic is configured.
func (c DeadLetterConfig) Enabled() bool {
	return c.Topic != ""
}

// WithDefaults returns a copy of the config with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.MinBytes == 0 {
		c.MinBytes = DefaultMinBytes
	}
	if c.MaxBytes == 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.MaxWait == 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.StartOffset == 0 {
		c.StartOffset = DefaultStartOffset
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = DefaultBatchTimeout
	}
	if c.DeadLetter.RequiredAcks == 0 {
		c.DeadLetter.RequiredAcks = int(DefaultRequiredAcks)
	}
	if c.DeadLetter.MaxAttempts == 0 {
		c.DeadLetter.MaxAttempts = DefaultMaxAttempts
	}
	if c.DeadLetter.WriteTimeout == 0 {
		c.DeadLetter.WriteTimeout = DefaultWriteTimeout
	}
	return c
}

// Validate checks the settings needed to join the consumer group.
func (c Config) Validate() error {
	if len(c.Brokers) == 0 {
		return ErrNoBrokers
	}
	if len(c.Topics) == 0 {
		return ErrNoTopics
	}
	if c.GroupID == "" {
		return ErrNoGroupID
	}
	if c.StartOffset != 0 && c.StartOffset != kafka.FirstOffset && c.StartOffset != kafka.LastOffset {
		return fmt.Errorf("%w: start offset %d", ErrInvalidConfig, c.StartOffset)
	}
	if c.SASL.Enabled {
		switch c.SASL.Mechanism {
		case SASLPlain, SASLScramSHA256, SASLScramSHA512:
		default:
			return fmt.Errorf("%w: %q", ErrUnsupportedSASLMechanism, c.SASL.Mechanism)
		}
	}
	switch c.DeadLetter.CompressionCodec {
	case "", "gzip", "snappy", "lz4", "zstd":
	default:
		return fmt.Errorf("%w: compression codec %q", ErrInvalidConfig, c.DeadLetter.CompressionCodec)
	}
	return nil
}
