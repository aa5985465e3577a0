package qdrant

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultGrpcURL  = "http://localhost:6334"
	defaultGrpcPort = 6334
)

// Config holds connection and behavior settings for the Qdrant client.
//
// The server is addressed by a single gRPC URL. The scheme selects transport
// security: "https" enables TLS, "http" does not. A URL without a port uses 6334.
//
// Example (programmatic):
//
//	cfg := qdrant.DefaultConfig()
//	cfg.GrpcURL = "https://xyz.cloud.qdrant.io:6334"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//
// Example (builder style):
//
//	cfg := qdrant.FromURL("http://localhost:6334").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// gRPC endpoint of the Qdrant server, e.g. "http://localhost:6334".
	GrpcURL string `yaml:"grpc_url"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key"`

	// Wait makes every upsert block until the points are applied.
	Wait bool `yaml:"wait"`

	// ShardKey, when set, targets this custom shard key on every upsert.
	ShardKey string `yaml:"shard_key"`

	// Maximum duration of a single upsert request. Zero disables the deadline.
	Timeout time.Duration `yaml:"timeout"`

	// Number of gRPC connections in the pool. Zero uses the SDK default.
	PoolSize uint `yaml:"pool_size"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		GrpcURL:            defaultGrpcURL,
		Wait:               true,
		Timeout:            30 * time.Second,
		CheckCompatibility: true,
	}
}

// FromURL returns a default config pre-filled with a specific gRPC URL.
func FromURL(grpcURL string) *Config {
	cfg := DefaultConfig()
	cfg.GrpcURL = grpcURL
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithWait(wait bool) *Config {
	c.Wait = wait
	return c
}

func (c *Config) WithShardKey(key string) *Config {
	c.ShardKey = key
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}

// Validate checks that the gRPC URL can be turned into an endpoint.
func (c *Config) Validate() error {
	_, err := c.endpoint()
	return err
}

// endpoint is the connection target derived from GrpcURL.
type endpoint struct {
	host   string
	port   int
	useTLS bool
}

func (e endpoint) String() string {
	return e.host + ":" + strconv.Itoa(e.port)
}

func (c *Config) endpoint() (endpoint, error) {
	raw := c.GrpcURL
	if raw == "" {
		raw = defaultGrpcURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return endpoint{}, fmt.Errorf("%w: %q: %v", ErrInvalidURL, raw, err)
	}

	var useTLS bool
	switch strings.ToLower(u.Scheme) {
	case "http":
	case "https":
		useTLS = true
	default:
		return endpoint{}, fmt.Errorf("%w: %q: scheme must be http or https", ErrInvalidURL, raw)
	}

	host := u.Hostname()
	if host == "" {
		return endpoint{}, fmt.Errorf("%w: %q: missing host", ErrInvalidURL, raw)
	}

	port := defaultGrpcPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return endpoint{}, fmt.Errorf("%w: %q: invalid port", ErrInvalidURL, raw)
		}
	}

	return endpoint{host: host, port: port, useTLS: useTLS}, nil
}
