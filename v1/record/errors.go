package record

import "errors"

// Extraction errors. Failures of the vector field wrap the vector package's
// errors instead.
var (
	// ErrMissingField is returned when a required field is absent, null or of the wrong type.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidID is returned when the id is neither a UUID string nor a non-negative integer.
	ErrInvalidID = errors.New("invalid point id")

	// ErrInvalidPayload is returned when the payload is present but not an object.
	ErrInvalidPayload = errors.New("invalid payload")
)

// IsMissingFieldError checks if the error is a missing field error.
func IsMissingFieldError(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsInvalidIDError checks if the error is an invalid id error.
func IsInvalidIDError(err error) bool {
	return errors.Is(err, ErrInvalidID)
}
