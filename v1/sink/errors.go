package sink

import (
	"errors"

	"github.com/Aleph-Alpha/qdrant-sink/v1/record"
	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
	"github.com/Aleph-Alpha/qdrant-sink/v1/vector"
)

var (
	// ErrRecordRejected wraps the cause when a record cannot be turned into a
	// point and no ErrorReporter is configured.
	ErrRecordRejected = errors.New("record rejected")

	// ErrUpsertFailed wraps the cause when a collection group cannot be written
	// and no ErrorReporter is configured.
	ErrUpsertFailed = errors.New("upsert failed")

	// ErrReportFailed is returned when the ErrorReporter itself fails.
	ErrReportFailed = errors.New("error report failed")
)

// ErrorKind classifies why a record failed.
type ErrorKind string

const (
	KindNone            ErrorKind = ""
	KindMalformedInput  ErrorKind = "malformed_input"
	KindUnsupportedType ErrorKind = "unsupported_type"
	KindMissingField    ErrorKind = "missing_field"
	KindInvalidID       ErrorKind = "invalid_id"
	KindInvalidPayload  ErrorKind = "invalid_payload"
	KindInvalidVector   ErrorKind = "invalid_vector"
	KindTransport       ErrorKind = "transport"
	KindUnknown         ErrorKind = "unknown"
)

// ClassifyError maps an extraction or upsert error onto its ErrorKind. Any
// other error is KindUnknown.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, value.ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, value.ErrUnsupportedType):
		return KindUnsupportedType
	case errors.Is(err, record.ErrMissingField):
		return KindMissingField
	case errors.Is(err, record.ErrInvalidID):
		return KindInvalidID
	case errors.Is(err, record.ErrInvalidPayload):
		return KindInvalidPayload
	case vector.IsVectorError(err):
		return KindInvalidVector
	case errors.Is(err, ErrUpsertFailed):
		return KindTransport
	default:
		return KindUnknown
	}
}

// IsInputError checks if the error is caused by the content of a record.
func IsInputError(err error) bool {
	kind := ClassifyError(err)
	return kind != KindNone && kind != KindUnknown
}
