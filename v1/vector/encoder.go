package vector

import (
	"fmt"
	"math"

	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

// Field names of a sparse vector object.
const (
	FieldIndices = "indices"
	FieldValues  = "values"
)

// Encode interprets the vector field of a record.
//
//   - A List is an anonymous vector: multi-dense when its first item is itself
//     a List, dense otherwise.
//   - A Struct is a set of named vectors: List fields follow the rule above and
//     Struct fields are sparse vectors with "indices" and "values".
//   - Any other shape is rejected with ErrInvalidVectorFormat.
//
// Integer and Double components are both accepted and narrowed to float32.
func Encode(v value.Value) (Set, error) {
	switch v.Kind() {
	case value.KindList:
		vec, err := encodeList(v)
		if err != nil {
			return Set{}, err
		}
		return NewAnonymousSet(vec), nil
	case value.KindStruct:
		named := make(map[string]Vector, v.Len())
		for _, name := range v.Keys() {
			field, _ := v.Field(name)
			vec, err := encodeNamed(field)
			if err != nil {
				return Set{}, fmt.Errorf("vector %q: %w", name, err)
			}
			named[name] = vec
		}
		return Set{named: named}, nil
	default:
		return Set{}, fmt.Errorf("%w: expected list or struct, got %s", ErrInvalidVectorFormat, v.Kind())
	}
}

func encodeNamed(field value.Value) (Vector, error) {
	switch field.Kind() {
	case value.KindList:
		return encodeList(field)
	case value.KindStruct:
		return encodeSparse(field)
	default:
		return Vector{}, fmt.Errorf("%w: expected list or struct, got %s", ErrInvalidVectorFormat, field.Kind())
	}
}

// encodeList peeks at the first item to choose between dense and multi-dense.
func encodeList(list value.Value) (Vector, error) {
	if first, ok := list.Index(0); ok && first.Kind() == value.KindList {
		return encodeMultiDense(list)
	}
	data, err := numericList(list)
	if err != nil {
		return Vector{}, err
	}
	return Vector{typ: Dense, data: data}, nil
}

func encodeMultiDense(list value.Value) (Vector, error) {
	rows := list.Len()
	var (
		flat  []float32
		width int
	)
	for i := 0; i < rows; i++ {
		row, _ := list.Index(i)
		if row.Kind() != value.KindList {
			return Vector{}, fmt.Errorf("%w: row %d of multi-vector is a %s", ErrInvalidVectorFormat, i, row.Kind())
		}
		data, err := numericList(row)
		if err != nil {
			if i > 0 && row.Len() == 0 {
				return Vector{}, fmt.Errorf("%w: row %d has 0 components, expected %d", ErrInconsistentDimension, i, width)
			}
			return Vector{}, fmt.Errorf("row %d: %w", i, err)
		}
		if i == 0 {
			width = len(data)
			flat = make([]float32, 0, width*rows)
		} else if len(data) != width {
			return Vector{}, fmt.Errorf("%w: row %d has %d components, expected %d", ErrInconsistentDimension, i, len(data), width)
		}
		flat = append(flat, data...)
	}
	return Vector{typ: MultiDense, data: flat, rows: rows}, nil
}

func encodeSparse(obj value.Value) (Vector, error) {
	rawIndices, ok := obj.Field(FieldIndices)
	if !ok {
		return Vector{}, fmt.Errorf("%w: %q", ErrMissingSparseField, FieldIndices)
	}
	rawValues, ok := obj.Field(FieldValues)
	if !ok {
		return Vector{}, fmt.Errorf("%w: %q", ErrMissingSparseField, FieldValues)
	}

	indices, err := indexList(rawIndices)
	if err != nil {
		return Vector{}, err
	}
	values, err := numericList(rawValues)
	if err != nil {
		return Vector{}, err
	}
	if len(indices) != len(values) {
		return Vector{}, fmt.Errorf("%w: %d indices, %d values", ErrDimensionMismatch, len(indices), len(values))
	}
	return Vector{typ: Sparse, data: values, indices: indices}, nil
}

// numericList converts a non-empty List of numbers.
func numericList(list value.Value) ([]float32, error) {
	if list.Kind() != value.KindList {
		return nil, fmt.Errorf("%w: expected list of numbers, got %s", ErrInvalidVectorFormat, list.Kind())
	}
	n := list.Len()
	if n == 0 {
		return nil, ErrEmptyVector
	}
	data := make([]float32, n)
	for i := 0; i < n; i++ {
		item, _ := list.Index(i)
		f, ok := item.AsFloat()
		if !ok {
			return nil, fmt.Errorf("%w: component %d is a %s", ErrInvalidVectorFormat, i, item.Kind())
		}
		data[i] = float32(f)
	}
	return data, nil
}

func indexList(list value.Value) ([]uint32, error) {
	if list.Kind() != value.KindList {
		return nil, fmt.Errorf("%w: %q must be a list, got %s", ErrInvalidVectorFormat, FieldIndices, list.Kind())
	}
	n := list.Len()
	indices := make([]uint32, n)
	for i := 0; i < n; i++ {
		item, _ := list.Index(i)
		idx, ok := item.AsInteger()
		if !ok {
			return nil, fmt.Errorf("%w: index %d is a %s", ErrInvalidIndex, i, item.Kind())
		}
		if idx < 0 || idx > math.MaxUint32 {
			return nil, fmt.Errorf("%w: index %d is %d", ErrInvalidIndex, i, idx)
		}
		indices[i] = uint32(idx)
	}
	return indices, nil
}
