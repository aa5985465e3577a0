package qdrant

import (
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qdrant-sink/v1/record"
	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
	"github.com/Aleph-Alpha/qdrant-sink/v1/vector"
)

// ── Point Conversion ─────────────────────────────────────────────────────────

// toPointStructs converts extracted points into SDK points.
func toPointStructs(points []record.Point) []*qdrant.PointStruct {
	out := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		out[i] = toPointStruct(p)
	}
	return out
}

func toPointStruct(p record.Point) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      toPointID(p.ID),
		Payload: toPayload(p.Payload()),
		Vectors: toVectors(p.Vectors),
	}
}

func toPointID(id record.PointID) *qdrant.PointId {
	if u, ok := id.UUID(); ok {
		return qdrant.NewIDUUID(u.String())
	}
	n, _ := id.Num()
	return qdrant.NewIDNum(n)
}

// ── Payload Conversion ───────────────────────────────────────────────────────

func toPayload(payload map[string]value.Value) map[string]*qdrant.Value {
	out := make(map[string]*qdrant.Value, len(payload))
	for k, v := range payload {
		out[k] = toValue(v)
	}
	return out
}

// toValue recursively converts a canonical value into a Qdrant value.
// Integer and Double stay distinct, matching Qdrant's own payload types.
func toValue(v value.Value) *qdrant.Value {
	switch v.Kind() {
	case value.KindBool:
		b, _ := v.AsBool()
		return qdrant.NewValueBool(b)
	case value.KindInteger:
		i, _ := v.AsInteger()
		return qdrant.NewValueInt(i)
	case value.KindDouble:
		d, _ := v.AsDouble()
		return qdrant.NewValueDouble(d)
	case value.KindString:
		s, _ := v.AsString()
		return qdrant.NewValueString(s)
	case value.KindList:
		items, _ := v.AsList()
		values := make([]*qdrant.Value, len(items))
		for i, item := range items {
			values[i] = toValue(item)
		}
		return qdrant.NewValueFromList(values...)
	case value.KindStruct:
		fields, _ := v.AsStruct()
		return qdrant.NewValueFromFields(toPayload(fields))
	default:
		return qdrant.NewValueNull()
	}
}

// ── Vector Conversion ────────────────────────────────────────────────────────

func toVectors(set vector.Set) *qdrant.Vectors {
	if v, ok := set.Anonymous(); ok {
		switch v.Type() {
		case vector.MultiDense:
			return qdrant.NewVectorsMulti(v.Rows())
		case vector.Sparse:
			return qdrant.NewVectorsSparse(v.Indices(), v.Data())
		default:
			return qdrant.NewVectorsDense(v.Data())
		}
	}

	named := set.Named()
	out := make(map[string]*qdrant.Vector, len(named))
	for name, v := range named {
		out[name] = toVector(v)
	}
	return qdrant.NewVectorsMap(out)
}

func toVector(v vector.Vector) *qdrant.Vector {
	switch v.Type() {
	case vector.MultiDense:
		return qdrant.NewVectorMulti(v.Rows())
	case vector.Sparse:
		return qdrant.NewVectorSparse(v.Indices(), v.Data())
	default:
		return qdrant.NewVectorDense(v.Data())
	}
}
