package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix marks the environment variables read by Load.
	EnvPrefix = "QDRANT_SINK_"

	// envNestingSeparator separates nested keys in variable names, so that
	// QDRANT_SINK_KAFKA__GROUP_ID sets kafka.group_id.
	envNestingSeparator = "__"

	maxConfigFileSize = 1024 * 1024 // 1MB
)

// listKeys are split on commas when set through the environment.
var listKeys = map[string]bool{
	"kafka.brokers": true,
	"kafka.topics":  true,
}

// ErrInvalidConfig wraps every error returned by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads the configuration.
//
// Precedence (highest to lowest):
//  1. Environment variables prefixed with QDRANT_SINK_
//  2. The YAML file at path, if path is not empty
//  3. Default()
//
// Example:
//
//	QDRANT_SINK_QDRANT__GRPC_URL=https://xyz.cloud.qdrant.io:6334
//	QDRANT_SINK_KAFKA__BROKERS=broker-1:9092,broker-2:9092
//	QDRANT_SINK_SINK__COLLECTION_NAME=documents
func Load(path string) (*Config, error) {
	var content []byte
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if info.Size() > maxConfigFileSize {
			return nil, fmt.Errorf("%w: config file %s exceeds %d bytes", ErrInvalidConfig, path, maxConfigFileSize)
		}
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
		}
	}
	return load(content)
}

// LoadBytes reads the configuration from YAML content and the environment.
func LoadBytes(content []byte) (*Config, error) {
	return load(content)
}

func load(content []byte) (*Config, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: failed to parse YAML: %w", ErrInvalidConfig, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("%w: failed to load environment variables: %w", ErrInvalidConfig, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal config: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// envKeyValue maps QDRANT_SINK_KAFKA__GROUP_ID to kafka.group_id. List keys
// are split on commas.
func envKeyValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, envNestingSeparator, ".")

	if listKeys[key] {
		parts := strings.Split(value, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		return key, items
	}
	return key, value
}
