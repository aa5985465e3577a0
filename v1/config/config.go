package config

import (
	"fmt"

	"github.com/Aleph-Alpha/qdrant-sink/v1/kafka"
	"github.com/Aleph-Alpha/qdrant-sink/v1/logger"
	"github.com/Aleph-Alpha/qdrant-sink/v1/metrics"
	"github.com/Aleph-Alpha/qdrant-sink/v1/qdrant"
	"github.com/Aleph-Alpha/qdrant-sink/v1/schema_registry"
	"github.com/Aleph-Alpha/qdrant-sink/v1/sink"
	"github.com/Aleph-Alpha/qdrant-sink/v1/tracer"
)

const serviceName = "qdrant-sink"

// Config is the complete configuration of the sink process.
type Config struct {
	Logger         logger.Config          `yaml:"logger"`
	Metrics        MetricsConfig          `yaml:"metrics"`
	Tracer         tracer.Config          `yaml:"tracer"`
	Qdrant         qdrant.Config          `yaml:"qdrant"`
	Kafka          kafka.Config           `yaml:"kafka"`
	SchemaRegistry schema_registry.Config `yaml:"schema_registry"`
	Sink           sink.Config            `yaml:"sink"`
}

// MetricsConfig adds an on/off switch to the metrics server settings.
type MetricsConfig struct {
	Enabled bool           `yaml:"enabled"`
	Server  metrics.Config `yaml:"server"`
}

// Default returns the configuration used for every key that is not set.
func Default() Config {
	return Config{
		Logger: logger.Config{
			Level:       logger.Info,
			ServiceName: serviceName,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Server: metrics.Config{
				Address:                 metrics.DefaultMetricsAddress,
				EnableDefaultCollectors: true,
				Namespace:               "qdrant_sink",
				ServiceName:             serviceName,
			},
		},
		Tracer: tracer.Config{
			ServiceName: serviceName,
		},
		Qdrant: *qdrant.DefaultConfig(),
		Kafka:  kafka.Config{}.WithDefaults(),
		SchemaRegistry: schema_registry.Config{
			Timeout: schema_registry.DefaultTimeout,
		},
	}
}

// Validate checks the settings that would otherwise only fail once the
// process tries to connect.
func (c Config) Validate() error {
	if err := c.Qdrant.Validate(); err != nil {
		return fmt.Errorf("qdrant: %w", err)
	}
	if err := c.Kafka.Validate(); err != nil {
		return fmt.Errorf("kafka: %w", err)
	}
	return nil
}
