package vector

import (
	"math"
	"sort"

	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

// Type identifies the shape of a Vector.
type Type int

const (
	// Dense is a single flat list of components.
	Dense Type = iota
	// MultiDense is a matrix of equally sized rows stored row-major.
	MultiDense
	// Sparse is a list of values paired with their non-negative indices.
	Sparse
)

func (t Type) String() string {
	switch t {
	case Dense:
		return "dense"
	case MultiDense:
		return "multi_dense"
	case Sparse:
		return "sparse"
	default:
		return "unknown"
	}
}

// Vector holds float32 components plus the metadata describing their shape.
// For MultiDense, len(data) is always a multiple of rows. For Sparse, indices
// and data have the same length.
type Vector struct {
	typ     Type
	data    []float32
	rows    int
	indices []uint32
}

// NewDense builds a dense vector from a copy of data.
func NewDense(data []float32) Vector {
	return Vector{typ: Dense, data: append([]float32(nil), data...)}
}

// NewMultiDense flattens rows into a multi-dense vector. The caller is
// responsible for passing rows of equal length; Encode enforces this for
// record input.
func NewMultiDense(rows [][]float32) Vector {
	var flat []float32
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return Vector{typ: MultiDense, data: flat, rows: len(rows)}
}

// NewSparse builds a sparse vector from copies of indices and values.
func NewSparse(indices []uint32, values []float32) Vector {
	return Vector{
		typ:     Sparse,
		data:    append([]float32(nil), values...),
		indices: append([]uint32(nil), indices...),
	}
}

// Type reports the vector's shape.
func (v Vector) Type() Type { return v.typ }

// Data returns the flat component data. For sparse vectors these are the values.
func (v Vector) Data() []float32 { return append([]float32(nil), v.data...) }

// Indices returns the indices of a sparse vector, nil otherwise.
func (v Vector) Indices() []uint32 {
	if v.typ != Sparse {
		return nil
	}
	return append([]uint32(nil), v.indices...)
}

// RowCount returns the number of rows of a multi-dense vector, 1 for a dense vector
// and 0 for a sparse vector.
func (v Vector) RowCount() int {
	switch v.typ {
	case MultiDense:
		return v.rows
	case Dense:
		return 1
	default:
		return 0
	}
}

// Rows splits a multi-dense vector back into its rows. A dense vector yields a
// single row.
func (v Vector) Rows() [][]float32 {
	n := v.RowCount()
	if n == 0 {
		return nil
	}
	width := len(v.data) / n
	rows := make([][]float32, n)
	for i := range rows {
		rows[i] = append([]float32(nil), v.data[i*width:(i+1)*width]...)
	}
	return rows
}

// Dimension is the number of components of a dense vector or of one row of a
// multi-dense vector, and the number of stored entries of a sparse vector.
func (v Vector) Dimension() int {
	if v.typ == MultiDense && v.rows > 0 {
		return len(v.data) / v.rows
	}
	return len(v.data)
}

// Equal reports whether v and other have the same shape and components.
func (v Vector) Equal(other Vector) bool {
	if v.typ != other.typ || v.rows != other.rows || len(v.data) != len(other.data) || len(v.indices) != len(other.indices) {
		return false
	}
	for i := range v.data {
		if math.Float32bits(v.data[i]) != math.Float32bits(other.data[i]) {
			return false
		}
	}
	for i := range v.indices {
		if v.indices[i] != other.indices[i] {
			return false
		}
	}
	return true
}

// Value renders v in the record form that Encode accepts.
func (v Vector) Value() value.Value {
	switch v.typ {
	case MultiDense:
		rows := v.Rows()
		items := make([]value.Value, len(rows))
		for i, row := range rows {
			items[i] = floatsToList(row)
		}
		return value.List(items...)
	case Sparse:
		indices := make([]value.Value, len(v.indices))
		for i, idx := range v.indices {
			indices[i] = value.Integer(int64(idx))
		}
		return value.Struct(map[string]value.Value{
			FieldIndices: value.List(indices...),
			FieldValues:  floatsToList(v.data),
		})
	default:
		return floatsToList(v.data)
	}
}

func floatsToList(data []float32) value.Value {
	items := make([]value.Value, len(data))
	for i, f := range data {
		items[i] = value.Double(float64(f))
	}
	return value.List(items...)
}

// Set is the vector content of a point: either one anonymous vector or a
// mapping of names to vectors, never both. The zero Set is an empty named set.
type Set struct {
	single *Vector
	named  map[string]Vector
}

// NewAnonymousSet wraps a single unnamed vector.
func NewAnonymousSet(v Vector) Set {
	return Set{single: &v}
}

// NewNamedSet builds a named set from a copy of vectors.
func NewNamedSet(vectors map[string]Vector) Set {
	named := make(map[string]Vector, len(vectors))
	for k, v := range vectors {
		named[k] = v
	}
	return Set{named: named}
}

// IsAnonymous reports whether the set holds a single unnamed vector.
func (s Set) IsAnonymous() bool { return s.single != nil }

// Anonymous returns the unnamed vector of an anonymous set.
func (s Set) Anonymous() (Vector, bool) {
	if s.single == nil {
		return Vector{}, false
	}
	return *s.single, true
}

// Named returns a copy of the named vectors. It is empty for anonymous sets.
func (s Set) Named() map[string]Vector {
	named := make(map[string]Vector, len(s.named))
	for k, v := range s.named {
		named[k] = v
	}
	return named
}

// Names returns the vector names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.named))
	for k := range s.named {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of vectors in the set.
func (s Set) Len() int {
	if s.single != nil {
		return 1
	}
	return len(s.named)
}

// Equal reports whether both sets have the same form and equal vectors.
func (s Set) Equal(other Set) bool {
	if s.IsAnonymous() != other.IsAnonymous() {
		return false
	}
	if s.single != nil {
		return s.single.Equal(*other.single)
	}
	if len(s.named) != len(other.named) {
		return false
	}
	for k, v := range s.named {
		o, ok := other.named[k]
		if !ok || !v.Equal(o) {
			return false
		}
	}
	return true
}

// Value renders the set in the record form that Encode accepts: the vector
// itself for an anonymous set, a struct of vectors for a named one.
func (s Set) Value() value.Value {
	if s.single != nil {
		return s.single.Value()
	}
	fields := make(map[string]value.Value, len(s.named))
	for k, v := range s.named {
		fields[k] = v.Value()
	}
	return value.Struct(fields)
}
