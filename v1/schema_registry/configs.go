package schema_registry

import "time"

// DefaultTimeout bounds a single registry request.
const DefaultTimeout = 10 * time.Second

// Config holds configuration for the Confluent framing decoder and its
// optional registry lookups.
type Config struct {
	// Enabled strips the Confluent wire format header from message values.
	Enabled bool `yaml:"enabled"`

	// URL is the schema registry endpoint (e.g., "http://localhost:8081").
	// When empty, frames are stripped without checking the schema type.
	URL string `yaml:"url"`

	// Username for basic auth (optional)
	Username string `yaml:"username"`

	// Password for basic auth (optional)
	Password string `yaml:"password"`

	// Timeout for HTTP requests
	Timeout time.Duration `yaml:"timeout"`
}
