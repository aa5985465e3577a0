package value

import "errors"

// Normalization errors. Callers classify failures with errors.Is; the wrapped
// message carries the offending detail.
var (
	// ErrMalformedInput is returned when textual input is not a well-formed JSON value,
	// or when a number cannot be represented by the canonical tree.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedType is returned when a native structure contains a value
	// that has no mapping to the canonical tree, even after re-encoding it as JSON.
	ErrUnsupportedType = errors.New("unsupported type")
)

// IsMalformedInputError checks if the error is a malformed input error.
func IsMalformedInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsUnsupportedTypeError checks if the error is an unsupported type error.
func IsUnsupportedTypeError(err error) bool {
	return errors.Is(err, ErrUnsupportedType)
}
