package qdrant

import (
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-sink/v1/observability"
)

// shardKeySelector targets a single keyword shard key, or returns nil when no
// key is configured so that Qdrant applies its default routing.
func shardKeySelector(key string) *qdrant.ShardKeySelector {
	if key == "" {
		return nil
	}
	return &qdrant.ShardKeySelector{
		ShardKeys: []*qdrant.ShardKey{qdrant.NewShardKey(key)},
	}
}

// observeOperation notifies the observer about an operation if one is configured.
func (c *QdrantClient) observeOperation(operation, collection string, duration time.Duration, err error, size int64) {
	if c.observer != nil {
		c.observer.ObserveOperation(observability.OperationContext{
			Component: "qdrant",
			Operation: operation,
			Resource:  collection,
			Duration:  duration,
			Error:     err,
			Size:      size,
		})
	}
}
