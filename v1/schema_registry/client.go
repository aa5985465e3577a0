package schema_registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Schema types as reported by the registry. An empty type means Avro.
const (
	TypeAvro     = "AVRO"
	TypeJSON     = "JSON"
	TypeProtobuf = "PROTOBUF"
)

// Registry looks up schemas in a Confluent Schema Registry.
type Registry interface {
	// GetSchemaByID retrieves a schema by its ID
	GetSchemaByID(ctx context.Context, id int) (*Metadata, error)
}

// Metadata contains metadata about a registered schema
type Metadata struct {
	ID     int    `json:"id"`
	Schema string `json:"schema"`
	Type   string `json:"schemaType,omitempty"`
}

// Client is the default implementation of Registry
// that communicates with Confluent Schema Registry over HTTP.
// Schemas are immutable once registered, so lookups are cached forever.
type Client struct {
	url        string
	httpClient *http.Client
	username   string
	password   string

	cacheMutex sync.RWMutex
	cache      map[int]*Metadata
}

// NewClient creates a new schema registry client
func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, ErrNoURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		url:        strings.TrimRight(config.URL, "/"),
		httpClient: &http.Client{Timeout: config.Timeout},
		username:   config.Username,
		password:   config.Password,
		cache:      make(map[int]*Metadata),
	}, nil
}

// GetSchemaByID retrieves a schema from the registry by its ID
func (c *Client) GetSchemaByID(ctx context.Context, id int) (*Metadata, error) {
	c.cacheMutex.RLock()
	cached, ok := c.cache[id]
	c.cacheMutex.RUnlock()
	if ok {
		return cached, nil
	}

	url := fmt.Sprintf("%s/schemas/ids/%d", c.url, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrLookupFailed, err)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", "application/vnd.schemaregistry.v1+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch schema %d: %w", ErrLookupFailed, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: schema %d: %s", ErrSchemaNotFound, id, string(body))
		}
		return nil, fmt.Errorf("%w: schema registry returned status %d: %s", ErrLookupFailed, resp.StatusCode, string(body))
	}

	var meta Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrLookupFailed, err)
	}
	meta.ID = id
	if meta.Type == "" {
		meta.Type = TypeAvro
	}

	c.cacheMutex.Lock()
	c.cache[id] = &meta
	c.cacheMutex.Unlock()

	return &meta, nil
}
