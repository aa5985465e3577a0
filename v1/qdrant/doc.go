// Package qdrant provides the write side of the sink: a dependency-injected
// client that upserts extracted points into Qdrant collections.
//
// The package wraps the official Qdrant Go SDK and converts the sink's point
// model (record.Point, vector.Set and value.Value) into SDK structures. It
// integrates with the fx dependency injection framework and supports
// builder-style configuration.
//
// # Core Features
//
//   - Managed Qdrant client lifecycle with Fx integration
//   - Single gRPC URL configuration; https enables TLS, port defaults to 6334
//   - Automatic health check on client initialization
//   - One upsert request per call, so a collection group succeeds or fails as a unit
//   - Dense, multi-dense, sparse and named vectors
//   - Integer and double payload values kept distinct
//   - Optional custom shard key and per-request timeout
//   - Observer hook for upsert metrics
//
// # Basic Usage
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{
//	    Config: qdrant.FromURL("http://localhost:6334"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Upsert(ctx, "documents", points)
//	if qdrant.IsUpsertError(err) {
//	    // every point of this call failed
//	}
//
// *QdrantClient satisfies sink.Upserter and is normally handed to the sink
// rather than called directly.
//
// # Configuration
//
//	qdrant:
//	  grpc_url: "https://xyz.cloud.qdrant.io:6334"
//	  api_key: "..."
//	  wait: true
//	  shard_key: "tenant-a"
//	  timeout: 30s
//
// An invalid URL or a scheme other than http/https is rejected with
// ErrInvalidURL when the client is created.
//
// # FX Module Integration
//
//	app := fx.New(
//	    fx.Supply(qdrant.DefaultConfig()),
//	    qdrant.FXModule,
//	)
//
// The module closes the client when the application stops.
//
// # Thread Safety
//
// The client is safe for concurrent use.
package qdrant
