package qdrant

import (
	"context"
	"fmt"
	"log"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-sink/v1/record"
)

// Upsert ──────────────────────────────────────────────────────────────
// Upsert
// ──────────────────────────────────────────────────────────────
//
// Upsert writes all points into the collection with a single request, so the
// points either all succeed or all fail together.
//
// The request waits for the points to be applied when Config.Wait is set and
// targets Config.ShardKey when one is configured. Errors reported by the SDK
// are wrapped with ErrUpsertFailed.
func (c *QdrantClient) Upsert(ctx context.Context, collection string, points []record.Point) error {
	if collection == "" {
		return fmt.Errorf("[Qdrant] %w", ErrEmptyCollection)
	}
	if len(points) == 0 {
		return nil
	}
	if !c.started || c.api == nil {
		return fmt.Errorf("[Qdrant] %w", ErrNotInitialized)
	}

	req := &qdrant.UpsertPoints{
		CollectionName:   collection,
		Points:           toPointStructs(points),
		Wait:             qdrant.PtrOf(c.cfg.Wait),
		ShardKeySelector: shardKeySelector(c.cfg.ShardKey),
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	_, err := c.api.Upsert(ctx, req)
	c.observeOperation("upsert", collection, time.Since(start), err, int64(len(points)))
	if err != nil {
		return fmt.Errorf("[Qdrant] %w (collection=%s, points=%d): %w", ErrUpsertFailed, collection, len(points), err)
	}

	log.Printf("[Qdrant] Upserted %d points (collection=%s)", len(points), collection)
	return nil
}
