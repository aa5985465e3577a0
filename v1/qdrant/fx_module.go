package qdrant

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
)

// FXModule defines the Fx module for the Qdrant client.
//
// The module:
//  1. Provides the NewQdrantClient factory function to the dependency injection container,
//     making the client available to other components.
//  2. Invokes RegisterQdrantLifecycle to close the client on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(qdrant.DefaultConfig()),
//	    qdrant.FXModule,
//	    // other modules...
//	)
//
// Dependencies required by this module:
// - A *qdrant.Config instance must be available in the dependency injection container.
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams defines dependencies needed to construct the Qdrant client.
type QdrantParams struct {
	fx.In
	Config   *Config
	Observer observability.Observer `optional:"true"`
}

// RegisterQdrantLifecycle handles startup/shutdown of the Qdrant client.
// It ensures proper resource cleanup and logging.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *QdrantClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("[Qdrant] client initialized successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := client.Close(); err != nil {
				log.Printf("[Qdrant] failed to close client: %v", err)
				return err
			}
			log.Println("[Qdrant] client connection closed")
			return nil
		},
	})
}
