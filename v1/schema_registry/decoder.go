package schema_registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

// Decoder strips the Confluent wire format header from message values
// produced by a JSON Schema serializer.
type Decoder struct {
	registry Registry
}

// NewDecoder creates a decoder. With a nil registry frames are stripped
// without looking at their schema.
func NewDecoder(registry Registry) *Decoder {
	return &Decoder{registry: registry}
}

// Decode returns the JSON payload of data.
//
// Unframed data is returned as is. A frame whose schema is not a JSON schema
// yields an error wrapping both ErrUnsupportedSchemaType and
// value.ErrMalformedInput, since its payload is not JSON text. So does a frame
// referencing a schema ID the registry does not know. Other errors reaching the
// registry wrap ErrLookupFailed.
func (d *Decoder) Decode(ctx context.Context, data []byte) ([]byte, error) {
	if !IsFramed(data) {
		return data, nil
	}

	id, payload, err := DecodeSchemaID(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", value.ErrMalformedInput, err)
	}
	if d.registry == nil {
		return payload, nil
	}

	meta, err := d.registry.GetSchemaByID(ctx, id)
	if errors.Is(err, ErrSchemaNotFound) {
		return nil, fmt.Errorf("%w: %w", value.ErrMalformedInput, err)
	}
	if err != nil {
		return nil, err
	}
	if meta.Type != TypeJSON {
		return nil, fmt.Errorf("%w: %w: schema %d has type %s", value.ErrMalformedInput, ErrUnsupportedSchemaType, id, meta.Type)
	}
	return payload, nil
}
