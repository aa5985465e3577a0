package record

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
	"github.com/Aleph-Alpha/qdrant-sink/v1/vector"
)

// Record field names.
const (
	FieldCollectionName = "collection_name"
	FieldID             = "id"
	FieldVector         = "vector"
	FieldPayload        = "payload"
)

// Extractor reads the point fields out of a normalized record.
type Extractor struct {
	tree               value.Value
	collectionOverride string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithCollectionOverride routes every record to the given collection and makes
// the collection_name field optional. An empty name disables the override.
func WithCollectionOverride(name string) Option {
	return func(e *Extractor) {
		e.collectionOverride = name
	}
}

// NewExtractor wraps a record tree. The tree must be a Struct; anything else
// is rejected with value.ErrMalformedInput.
func NewExtractor(tree value.Value, opts ...Option) (*Extractor, error) {
	if tree.Kind() != value.KindStruct {
		return nil, fmt.Errorf("%w: record is a %s, expected an object", value.ErrMalformedInput, tree.Kind())
	}
	e := &Extractor{tree: tree}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Validate checks that the fields every point needs are present and not null:
// collection_name (unless overridden) and id. It does not check their contents.
func (e *Extractor) Validate() error {
	if e.collectionOverride == "" {
		if !e.present(FieldCollectionName) {
			return fmt.Errorf("%w: %q", ErrMissingField, FieldCollectionName)
		}
	}
	if !e.present(FieldID) {
		return fmt.Errorf("%w: %q", ErrMissingField, FieldID)
	}
	return nil
}

func (e *Extractor) present(name string) bool {
	f, ok := e.tree.Field(name)
	return ok && !f.IsNull()
}

// CollectionName returns the configured override, or else the collection_name field.
func (e *Extractor) CollectionName() (string, error) {
	if e.collectionOverride != "" {
		return e.collectionOverride, nil
	}
	f, ok := e.tree.Field(FieldCollectionName)
	if !ok || f.IsNull() {
		return "", fmt.Errorf("%w: %q", ErrMissingField, FieldCollectionName)
	}
	name, ok := f.AsString()
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %s", ErrMissingField, FieldCollectionName, f.Kind())
	}
	if name == "" {
		return "", fmt.Errorf("%w: %q is empty", ErrMissingField, FieldCollectionName)
	}
	return name, nil
}

// PointID parses the id field. Strings must be UUIDs and integers must not be negative.
func (e *Extractor) PointID() (PointID, error) {
	f, ok := e.tree.Field(FieldID)
	if !ok {
		return PointID{}, fmt.Errorf("%w: %q", ErrMissingField, FieldID)
	}

	switch f.Kind() {
	case value.KindString:
		s, _ := f.AsString()
		id, err := uuid.Parse(s)
		if err != nil {
			return PointID{}, fmt.Errorf("%w: %q is not a UUID: %v", ErrInvalidID, s, err)
		}
		return NewUUIDPointID(id), nil
	case value.KindInteger:
		n, _ := f.AsInteger()
		if n < 0 {
			return PointID{}, fmt.Errorf("%w: %d is negative", ErrInvalidID, n)
		}
		return NewNumericPointID(uint64(n)), nil
	default:
		return PointID{}, fmt.Errorf("%w: expected UUID string or non-negative integer, got %s", ErrInvalidID, f.Kind())
	}
}

// Payload returns the payload fields. An absent or null payload is empty.
func (e *Extractor) Payload() (map[string]value.Value, error) {
	f, ok := e.tree.Field(FieldPayload)
	if !ok || f.IsNull() {
		return map[string]value.Value{}, nil
	}
	fields, ok := f.AsStruct()
	if !ok {
		return nil, fmt.Errorf("%w: expected object, got %s", ErrInvalidPayload, f.Kind())
	}
	return fields, nil
}

// Vectors encodes the vector field. An absent or null field is an empty named set.
func (e *Extractor) Vectors() (vector.Set, error) {
	f, ok := e.tree.Field(FieldVector)
	if !ok || f.IsNull() {
		return vector.NewNamedSet(nil), nil
	}
	set, err := vector.Encode(f)
	if err != nil {
		return vector.Set{}, fmt.Errorf("field %q: %w", FieldVector, err)
	}
	return set, nil
}

// Point validates the record and assembles its point.
func (e *Extractor) Point() (Point, error) {
	if err := e.Validate(); err != nil {
		return Point{}, err
	}
	id, err := e.PointID()
	if err != nil {
		return Point{}, err
	}
	payload, err := e.Payload()
	if err != nil {
		return Point{}, err
	}
	vectors, err := e.Vectors()
	if err != nil {
		return Point{}, err
	}
	return NewPoint(id, payload, vectors), nil
}

// Extract is the one-call form used by the sink: it wraps tree, resolves the
// destination collection and builds the point.
func Extract(tree value.Value, opts ...Option) (string, Point, error) {
	e, err := NewExtractor(tree, opts...)
	if err != nil {
		return "", Point{}, err
	}
	if err := e.Validate(); err != nil {
		return "", Point{}, err
	}
	collection, err := e.CollectionName()
	if err != nil {
		return "", Point{}, err
	}
	point, err := e.Point()
	if err != nil {
		return "", Point{}, err
	}
	return collection, point, nil
}
