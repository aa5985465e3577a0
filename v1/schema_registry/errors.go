package schema_registry

import "errors"

var (
	// ErrNoURL is returned by NewClient when no registry URL is configured.
	ErrNoURL = errors.New("schema registry URL is required")

	// ErrInvalidFrame is returned for data that does not carry the Confluent
	// wire format header.
	ErrInvalidFrame = errors.New("invalid wire format frame")

	// ErrLookupFailed wraps errors talking to the registry.
	ErrLookupFailed = errors.New("schema lookup failed")

	// ErrSchemaNotFound is returned when the registry does not know a schema
	// ID. The ID comes from the message, so this is not a lookup failure.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrUnsupportedSchemaType is returned for frames whose schema is not a
	// JSON schema.
	ErrUnsupportedSchemaType = errors.New("unsupported schema type")
)

// IsLookupError checks if the error came from the registry rather than from
// the message itself.
func IsLookupError(err error) bool {
	return errors.Is(err, ErrLookupFailed)
}
