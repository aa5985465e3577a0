package sink

import (
	"fmt"

	"github.com/Aleph-Alpha/qdrant-sink/v1/record"
)

// Record is one raw message handed over by the runtime.
type Record struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte

	// Value is either textual JSON ([]byte or string) or an in-memory
	// structure. A nil Value marks a record without content; it is skipped.
	Value interface{}

	// Raw holds the value exactly as it arrived, before any decoding. Error
	// reporters publish it in place of Value when set.
	Raw []byte

	// DecodeErr is set when the transport could not decode the raw value.
	// Such a record is rejected with this error instead of being normalized.
	DecodeErr error

	Headers map[string]string
}

// String identifies the record by its position in the stream.
func (r Record) String() string {
	return fmt.Sprintf("%s/%d@%d", r.Topic, r.Partition, r.Offset)
}

// Outcome is the fate of a single record within a batch.
type Outcome int

const (
	// OutcomeSkipped marks a record with a null value.
	OutcomeSkipped Outcome = iota
	// OutcomeRejected marks a record that could not be turned into a point.
	OutcomeRejected
	// OutcomeUpserted marks a record whose point was written.
	OutcomeUpserted
	// OutcomeUpsertFailed marks a record whose collection group failed to upsert.
	OutcomeUpsertFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUpserted:
		return "upserted"
	case OutcomeUpsertFailed:
		return "upsert_failed"
	default:
		return "unknown"
	}
}

// RecordResult describes what happened to one record.
type RecordResult struct {
	Record     Record
	Outcome    Outcome
	Collection string
	Point      *record.Point
	Kind       ErrorKind
	Err        error
}

// GroupResult describes the upsert of all points destined for one collection.
type GroupResult struct {
	Collection string
	Points     int
	Err        error
}

// BatchReport collects the outcome of a batch. Results are in batch order and
// Groups in order of the first appearance of each collection.
type BatchReport struct {
	Results []RecordResult
	Groups  []GroupResult
}

// Count returns the number of records with the given outcome.
func (r *BatchReport) Count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failed returns the records that were rejected or failed to upsert.
func (r *BatchReport) Failed() []RecordResult {
	var failed []RecordResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeRejected || res.Outcome == OutcomeUpsertFailed {
			failed = append(failed, res)
		}
	}
	return failed
}
