package kafka

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Brokers: []string{"localhost:9092"},
		Topics:  []string{"embeddings"},
		GroupID: "qdrant-sink",
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := validConfig().WithDefaults()

	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, DefaultBatchTimeout, cfg.BatchTimeout)
	assert.Equal(t, DefaultMinBytes, cfg.MinBytes)
	assert.Equal(t, int(DefaultMaxBytes), cfg.MaxBytes)
	assert.Equal(t, DefaultMaxWait, cfg.MaxWait)
	assert.Equal(t, kafka.FirstOffset, cfg.StartOffset)
	assert.Equal(t, int(kafka.RequireAll), cfg.DeadLetter.RequiredAcks)
	assert.Equal(t, DefaultMaxAttempts, cfg.DeadLetter.MaxAttempts)
	assert.Equal(t, DefaultWriteTimeout, cfg.DeadLetter.WriteTimeout)
	assert.False(t, cfg.DeadLetter.Enabled())

	custom := validConfig()
	custom.BatchSize = 10
	custom.BatchTimeout = 5 * time.Second
	custom.StartOffset = kafka.LastOffset
	custom = custom.WithDefaults()
	assert.Equal(t, 10, custom.BatchSize)
	assert.Equal(t, 5*time.Second, custom.BatchTimeout)
	assert.Equal(t, kafka.LastOffset, custom.StartOffset)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"Valid", func(*Config) {}, nil},
		{"NoBrokers", func(c *Config) { c.Brokers = nil }, ErrNoBrokers},
		{"NoTopics", func(c *Config) { c.Topics = nil }, ErrNoTopics},
		{"NoGroup", func(c *Config) { c.GroupID = "" }, ErrNoGroupID},
		{"BadOffset", func(c *Config) { c.StartOffset = 12 }, ErrInvalidConfig},
		{"BadCodec", func(c *Config) { c.DeadLetter.CompressionCodec = "brotli" }, ErrInvalidConfig},
		{"BadSASL", func(c *Config) {
			c.SASL = SASLConfig{Enabled: true, Mechanism: "GSSAPI"}
		}, ErrUnsupportedSASLMechanism},
		{"SASLDisabledIgnoresMechanism", func(c *Config) {
			c.SASL = SASLConfig{Mechanism: "GSSAPI"}
		}, nil},
		{"Scram", func(c *Config) {
			c.SASL = SASLConfig{Enabled: true, Mechanism: SASLScramSHA512, Username: "u", Password: "p"}
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsConfigError(err))
		})
	}
}

func TestCreateSASLMechanism(t *testing.T) {
	for _, mechanism := range []string{SASLPlain, SASLScramSHA256, SASLScramSHA512} {
		m, err := createSASLMechanism(SASLConfig{Mechanism: mechanism, Username: "u", Password: "p"})
		require.NoError(t, err, mechanism)
		assert.Equal(t, mechanism, m.Name())
	}

	_, err := createSASLMechanism(SASLConfig{Mechanism: "OAUTHBEARER"})
	assert.ErrorIs(t, err, ErrUnsupportedSASLMechanism)
}

func TestCreateTLSConfig(t *testing.T) {
	cfg, err := createTLSConfig(TLSConfig{Enabled: true, InsecureSkipVerify: true})
	require.NoError(t, err)
	assert.True(t, cfg.InsecureSkipVerify)
	assert.Nil(t, cfg.RootCAs)

	_, err = createTLSConfig(TLSConfig{Enabled: true, CACertPath: "/does/not/exist.pem"})
	assert.Error(t, err)
}

func TestNewReaderValidatesConfig(t *testing.T) {
	_, err := NewReader(Config{}, nopLogger{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoBrokers)

	reader, err := NewReader(validConfig(), nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, "qdrant-sink", reader.Config().GroupID)
	assert.Equal(t, "embeddings", reader.Config().Topic)
	require.NoError(t, reader.Close())

	multi := validConfig()
	multi.Topics = []string{"a", "b"}
	reader, err = NewReader(multi, nopLogger{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, reader.Config().GroupTopics)
	require.NoError(t, reader.Close())
}
