package vector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

func mustJSON(t *testing.T, input string) value.Value {
	t.Helper()
	v, err := value.FromJSON([]byte(input))
	require.NoError(t, err)
	return v
}

func TestEncodeDense(t *testing.T) {
	set, err := Encode(mustJSON(t, `[0.5, 1, 2]`))
	require.NoError(t, err)

	require.True(t, set.IsAnonymous())
	vec, ok := set.Anonymous()
	require.True(t, ok)
	assert.Equal(t, Dense, vec.Type())
	assert.Equal(t, []float32{0.5, 1, 2}, vec.Data())
	assert.Equal(t, 3, vec.Dimension())
}

func TestEncodeMultiDense(t *testing.T) {
	set, err := Encode(mustJSON(t, `[[1, 2], [3, 4]]`))
	require.NoError(t, err)

	vec, ok := set.Anonymous()
	require.True(t, ok)
	assert.Equal(t, MultiDense, vec.Type())
	assert.Equal(t, []float32{1, 2, 3, 4}, vec.Data())
	assert.Equal(t, 2, vec.RowCount())
	assert.Equal(t, [][]float32{{1, 2}, {3, 4}}, vec.Rows())
}

func TestEncodeNamedVectors(t *testing.T) {
	set, err := Encode(mustJSON(t, `{
		"text": [0.1, 0.2],
		"colbert": [[1, 2], [3, 4], [5, 6]],
		"keywords": {"indices": [1, 5], "values": [0.3, 0.7]}
	}`))
	require.NoError(t, err)

	assert.False(t, set.IsAnonymous())
	assert.Equal(t, []string{"colbert", "keywords", "text"}, set.Names())

	named := set.Named()
	assert.Equal(t, Dense, named["text"].Type())
	assert.Equal(t, MultiDense, named["colbert"].Type())
	assert.Equal(t, 3, named["colbert"].RowCount())

	sparse := named["keywords"]
	assert.Equal(t, Sparse, sparse.Type())
	assert.Equal(t, []uint32{1, 5}, sparse.Indices())
	assert.Equal(t, []float32{0.3, 0.7}, sparse.Data())
}

func TestEncodeEmptyStructIsEmptyNamedSet(t *testing.T) {
	set, err := Encode(value.Struct(nil))
	require.NoError(t, err)
	assert.False(t, set.IsAnonymous())
	assert.Equal(t, 0, set.Len())
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"scalar", `42`, ErrInvalidVectorFormat},
		{"string", `"vector"`, ErrInvalidVectorFormat},
		{"empty list", `[]`, ErrEmptyVector},
		{"string component", `[1, "a"]`, ErrInvalidVectorFormat},
		{"null component", `[1, null]`, ErrInvalidVectorFormat},
		{"ragged multi", `[[1, 2], [3]]`, ErrInconsistentDimension},
		{"multi with empty tail row", `[[1, 2], []]`, ErrInconsistentDimension},
		{"multi with empty first row", `[[], [1]]`, ErrEmptyVector},
		{"multi with scalar row", `[[1, 2], 3]`, ErrInvalidVectorFormat},
		{"named scalar", `{"v": 3}`, ErrInvalidVectorFormat},
		{"named empty", `{"v": []}`, ErrEmptyVector},
		{"sparse missing indices", `{"v": {"values": [1]}}`, ErrMissingSparseField},
		{"sparse missing values", `{"v": {"indices": [1]}}`, ErrMissingSparseField},
		{"sparse fractional index", `{"v": {"indices": [1.5], "values": [1]}}`, ErrInvalidIndex},
		{"sparse negative index", `{"v": {"indices": [-1], "values": [1]}}`, ErrInvalidIndex},
		{"sparse index overflow", `{"v": {"indices": [4294967296], "values": [1]}}`, ErrInvalidIndex},
		{"sparse mismatch", `{"v": {"indices": [1, 2], "values": [0.5]}}`, ErrDimensionMismatch},
		{"sparse empty values", `{"v": {"indices": [], "values": []}}`, ErrEmptyVector},
		{"sparse indices not list", `{"v": {"indices": 1, "values": [1]}}`, ErrInvalidVectorFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(mustJSON(t, tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "expected %v, got %v", tt.expected, err)
			assert.True(t, IsVectorError(err))
		})
	}
}

func TestEncodeNamedErrorMentionsVectorName(t *testing.T) {
	_, err := Encode(mustJSON(t, `{"image": {"indices": [1, 2], "values": [1]}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"image"`)
}

func TestEncodeIsIdempotentOverCanonicalForm(t *testing.T) {
	inputs := []string{
		`[0.25, 1, -3]`,
		`[[1, 2, 3], [4, 5, 6]]`,
		`{"a": [1], "b": [[1], [2]], "c": {"indices": [0, 10], "values": [0.5, 0.125]}}`,
		`{}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Encode(mustJSON(t, input))
			require.NoError(t, err)

			second, err := Encode(first.Value())
			require.NoError(t, err)

			assert.True(t, first.Equal(second))
		})
	}
}

func TestConstructorsMatchEncoder(t *testing.T) {
	set, err := Encode(mustJSON(t, `{"m": [[1, 2], [3, 4]], "s": {"indices": [3], "values": [2]}}`))
	require.NoError(t, err)

	expected := NewNamedSet(map[string]Vector{
		"m": NewMultiDense([][]float32{{1, 2}, {3, 4}}),
		"s": NewSparse([]uint32{3}, []float32{2}),
	})
	assert.True(t, expected.Equal(set))
	assert.False(t, NewAnonymousSet(NewDense([]float32{1})).Equal(set))
}
