package qdrant

import (
	"testing"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/qdrant-sink/v1/record"
	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
	"github.com/Aleph-Alpha/qdrant-sink/v1/vector"
)

func TestToPointID(t *testing.T) {
	id := uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002")

	assert.Equal(t, id.String(), toPointID(record.NewUUIDPointID(id)).GetUuid())
	assert.Equal(t, uint64(42), toPointID(record.NewNumericPointID(42)).GetNum())
}

func TestToValuePreservesKinds(t *testing.T) {
	original := value.Struct(map[string]value.Value{
		"null":   value.Null(),
		"bool":   value.Bool(true),
		"int":    value.Integer(-3),
		"double": value.Double(1.5),
		"string": value.String("s"),
		"list":   value.List(value.Integer(1), value.String("a")),
		"nested": value.Struct(map[string]value.Value{"k": value.Double(2)}),
	})

	converted := toValue(original)
	_, isStruct := converted.Kind.(*qdrant.Value_StructValue)
	require.True(t, isStruct)

	fields := converted.GetStructValue().GetFields()
	assert.Equal(t, int64(-3), fields["int"].GetIntegerValue())
	assert.Equal(t, 1.5, fields["double"].GetDoubleValue())
	_, isNull := fields["null"].Kind.(*qdrant.Value_NullValue)
	assert.True(t, isNull)

	assert.True(t, original.Equal(fromValue(converted)))
}

func TestToVectorsAnonymous(t *testing.T) {
	dense := toVectors(vector.NewAnonymousSet(vector.NewDense([]float32{1, 2})))
	assert.Equal(t, []float32{1, 2}, dense.GetVector().GetDense().GetData())

	multi := toVectors(vector.NewAnonymousSet(vector.NewMultiDense([][]float32{{1, 2}, {3, 4}})))
	rows := multi.GetVector().GetMultiDense().GetVectors()
	require.Len(t, rows, 2)
	assert.Equal(t, []float32{3, 4}, rows[1].GetData())
}

func TestToVectorsNamed(t *testing.T) {
	set := vector.NewNamedSet(map[string]vector.Vector{
		"text":     vector.NewDense([]float32{0.5}),
		"keywords": vector.NewSparse([]uint32{3, 9}, []float32{0.1, 0.2}),
		"colbert":  vector.NewMultiDense([][]float32{{1}, {2}}),
	})

	named := toVectors(set).GetVectors().GetVectors()
	require.Len(t, named, 3)
	assert.Equal(t, []float32{0.5}, named["text"].GetDense().GetData())
	assert.Equal(t, []uint32{3, 9}, named["keywords"].GetSparse().GetIndices())
	assert.Equal(t, []float32{0.1, 0.2}, named["keywords"].GetSparse().GetValues())
	assert.Len(t, named["colbert"].GetMultiDense().GetVectors(), 2)
}

func TestToVectorsEmptyNamedSet(t *testing.T) {
	converted := toVectors(vector.NewNamedSet(nil))
	require.NotNil(t, converted.GetVectors())
	assert.Empty(t, converted.GetVectors().GetVectors())
}

func TestToPointStruct(t *testing.T) {
	p := toPointStruct(record.NewPoint(
		record.NewNumericPointID(7),
		map[string]value.Value{"lang": value.String("en")},
		vector.NewAnonymousSet(vector.NewDense([]float32{1})),
	))

	assert.Equal(t, uint64(7), p.GetId().GetNum())
	assert.Equal(t, "en", p.GetPayload()["lang"].GetStringValue())
	assert.Equal(t, []float32{1}, p.GetVectors().GetVector().GetDense().GetData())
}

// fromValue recursively converts a Qdrant value back into a canonical value.
func fromValue(v *qdrant.Value) value.Value {
	if v == nil {
		return value.Null()
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return value.String(val.StringValue)
	case *qdrant.Value_IntegerValue:
		return value.Integer(val.IntegerValue)
	case *qdrant.Value_DoubleValue:
		return value.Double(val.DoubleValue)
	case *qdrant.Value_BoolValue:
		return value.Bool(val.BoolValue)
	case *qdrant.Value_StructValue:
		fields := make(map[string]value.Value, len(val.StructValue.GetFields()))
		for k, f := range val.StructValue.GetFields() {
			fields[k] = fromValue(f)
		}
		return value.Struct(fields)
	case *qdrant.Value_ListValue:
		items := make([]value.Value, len(val.ListValue.GetValues()))
		for i, item := range val.ListValue.GetValues() {
			items[i] = fromValue(item)
		}
		return value.List(items...)
	default:
		return value.Null()
	}
}
