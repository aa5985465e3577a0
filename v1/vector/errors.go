package vector

import "errors"

// Encoding errors. Every failure returned by Encode wraps exactly one of these.
var (
	// ErrInvalidVectorFormat is returned when a value has a shape that is not a
	// dense, multi-dense, sparse or named vector, or contains non-numeric components.
	ErrInvalidVectorFormat = errors.New("invalid vector format")

	// ErrEmptyVector is returned for a vector with no components.
	ErrEmptyVector = errors.New("empty vector")

	// ErrInconsistentDimension is returned when the rows of a multi-dense vector differ in length.
	ErrInconsistentDimension = errors.New("inconsistent dimension")

	// ErrMissingSparseField is returned when a sparse vector lacks indices or values.
	ErrMissingSparseField = errors.New("missing sparse field")

	// ErrInvalidIndex is returned when a sparse index is not a non-negative 32-bit integer.
	ErrInvalidIndex = errors.New("invalid sparse index")

	// ErrDimensionMismatch is returned when sparse indices and values differ in length.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// IsVectorError checks if the error originates from vector encoding.
func IsVectorError(err error) bool {
	return errors.Is(err, ErrInvalidVectorFormat) ||
		errors.Is(err, ErrEmptyVector) ||
		errors.Is(err, ErrInconsistentDimension) ||
		errors.Is(err, ErrMissingSparseField) ||
		errors.Is(err, ErrInvalidIndex) ||
		errors.Is(err, ErrDimensionMismatch)
}
