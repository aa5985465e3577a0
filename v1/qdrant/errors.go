package qdrant

import "errors"

var (
	// ErrInvalidURL is returned when the configured gRPC URL cannot be parsed
	// or uses a scheme other than http or https.
	ErrInvalidURL = errors.New("invalid qdrant grpc url")

	// ErrNotInitialized is returned when the client is used before it was
	// connected or after it was closed.
	ErrNotInitialized = errors.New("qdrant client not initialized")

	// ErrEmptyCollection is returned when an upsert names no collection.
	ErrEmptyCollection = errors.New("collection name cannot be empty")

	// ErrUpsertFailed wraps transport and server errors returned by an upsert.
	ErrUpsertFailed = errors.New("qdrant upsert failed")
)

// IsUpsertError checks if the error is a failed upsert.
func IsUpsertError(err error) bool {
	return errors.Is(err, ErrUpsertFailed)
}
