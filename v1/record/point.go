package record

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
	"github.com/Aleph-Alpha/qdrant-sink/v1/vector"
)

// PointID identifies a point. It is either a UUID or a non-negative integer.
type PointID struct {
	uuid   uuid.UUID
	num    uint64
	isUUID bool
}

// NewUUIDPointID returns a UUID identifier.
func NewUUIDPointID(id uuid.UUID) PointID {
	return PointID{uuid: id, isUUID: true}
}

// NewNumericPointID returns an integer identifier.
func NewNumericPointID(id uint64) PointID {
	return PointID{num: id}
}

// IsUUID reports whether the identifier is a UUID.
func (p PointID) IsUUID() bool { return p.isUUID }

// UUID returns the identifier if it is a UUID.
func (p PointID) UUID() (uuid.UUID, bool) { return p.uuid, p.isUUID }

// Num returns the identifier if it is numeric.
func (p PointID) Num() (uint64, bool) { return p.num, !p.isUUID }

// String renders the identifier in canonical form.
func (p PointID) String() string {
	if p.isUUID {
		return p.uuid.String()
	}
	return strconv.FormatUint(p.num, 10)
}

// Point is the typed form of a record, ready to be written to a collection.
// A Point does not change once built: the payload is only reachable through
// copies.
type Point struct {
	ID      PointID
	Vectors vector.Set

	payload map[string]value.Value
}

// NewPoint builds a point. The payload map is copied.
func NewPoint(id PointID, payload map[string]value.Value, vectors vector.Set) Point {
	return Point{ID: id, Vectors: vectors, payload: copyPayload(payload)}
}

// Payload returns a copy of the payload fields.
func (p Point) Payload() map[string]value.Value {
	return copyPayload(p.payload)
}

// PayloadLen returns the number of payload fields.
func (p Point) PayloadLen() int { return len(p.payload) }

func copyPayload(payload map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}

// Equal reports whether two points carry the same identifier, payload and vectors.
func (p Point) Equal(other Point) bool {
	if p.ID != other.ID || len(p.payload) != len(other.payload) {
		return false
	}
	for k, v := range p.payload {
		o, ok := other.payload[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return p.Vectors.Equal(other.Vectors)
}
