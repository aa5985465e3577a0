package qdrant

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Qdrant Go client
// used as the write side of the sink.
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Convert extracted points to SDK structures and upsert them.
//   • Offer a safe API suitable for Fx dependency injection.
//

// pointsAPI is the part of the SDK client the wrapper depends on.
// *qdrant.Client satisfies it; tests substitute a fake.
type pointsAPI interface {
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error)
	Close() error
}

// QdrantClient wraps the official Qdrant Go client and writes points into collections.
type QdrantClient struct {
	api       pointsAPI
	cfg       *Config
	started   bool
	observer  observability.Observer
	closeOnce sync.Once
}

// NewQdrantClient ──────────────────────────────────────────────────────────────
// NewQdrantClient
// ──────────────────────────────────────────────────────────────
//
// NewQdrantClient constructs a new instance of QdrantClient and validates
// connectivity via a health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this method
// performs an immediate health check to fail fast if the service is unreachable.
//
// Example:
//
//	client, _ := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: cfg})
func NewQdrantClient(p QdrantParams) (*QdrantClient, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	ep, err := cfg.endpoint()
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] %w", err)
	}

	log.Printf("[Qdrant] Connecting to endpoint: %s (tls=%t)", ep, ep.useTLS)

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   ep.host,
		Port:                   ep.port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 ep.useTLS,
		PoolSize:               cfg.PoolSize,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := newQdrantClient(client, cfg)
	if p.Observer != nil {
		qc.WithObserver(p.Observer)
	}

	if err := qc.healthCheck(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Println("[Qdrant] Client connected successfully")
	return qc, nil
}

func newQdrantClient(api pointsAPI, cfg *Config) *QdrantClient {
	return &QdrantClient{
		api:     api,
		cfg:     cfg,
		started: true,
	}
}

// WithObserver attaches an observer that is notified about every upsert.
func (c *QdrantClient) WithObserver(observer observability.Observer) *QdrantClient {
	c.observer = observer
	return c
}

// ──────────────────────────────────────────────────────────────
// healthCheck
// ──────────────────────────────────────────────────────────────
//
// healthCheck verifies the availability of the Qdrant service
// through the SDK's health endpoint.
func (c *QdrantClient) healthCheck() error {
	if !c.started || c.api == nil {
		return ErrNotInitialized
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] health check failed: %w", err)
	}

	log.Printf("[Qdrant] Health check passed (title=%s, version=%s, url=%s)", resp.GetTitle(), resp.GetVersion(), c.cfg.GrpcURL)

	return nil
}

// Close ──────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────
//
// Close releases the gRPC connections of the SDK client. It is safe to call
// more than once; only the first call has an effect.
func (c *QdrantClient) Close() error {
	if !c.started {
		return nil
	}

	var err error
	c.closeOnce.Do(func() {
		log.Println("[Qdrant] closing client")
		c.started = false
		if c.api != nil {
			err = c.api.Close()
		}
	})
	return err
}
