package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Aleph-Alpha/qdrant-sink/v1/record"
	"github.com/Aleph-Alpha/qdrant-sink/v1/value"
)

// group holds the points bound for one collection together with the batch
// positions of the records they came from.
type group struct {
	collection string
	indices    []int
	points     []record.Point
}

// Process converts a batch of records into points and writes them.
//
// Every record is normalized and extracted before the first upsert is issued.
// Records with a null value are skipped. A record that cannot be extracted is
// passed to the ErrorReporter when one is configured; otherwise the batch is
// aborted and nothing is written.
//
// Points are then grouped by collection and each group is upserted with a
// single call. When a group fails, all of its records are reported, or, with
// no reporter, the failure is collected and the remaining groups are still
// attempted. Collected failures are returned joined once all groups are done.
//
// The returned report is never nil and reflects the progress made up to the
// point where an error was returned.
func (s *Sink) Process(ctx context.Context, batch []Record) (*BatchReport, error) {
	report := &BatchReport{Results: make([]RecordResult, len(batch))}
	if len(batch) == 0 {
		return report, nil
	}

	start := time.Now()
	ctx, span := s.startSpan(ctx, "sink.process_batch")
	defer span.End()
	s.setAttributes(span, map[string]interface{}{"batch.size": len(batch)})

	groups, err := s.extractBatch(ctx, batch, report)
	if err == nil {
		err = s.upsertGroups(ctx, batch, groups, report)
	}

	s.observeOperation("process_batch", "", time.Since(start), err, int64(len(batch)), nil)
	if err != nil {
		s.recordError(span, err)
		return report, err
	}

	s.logger.Debug("batch processed", nil, map[string]interface{}{
		"records":     len(batch),
		"collections": len(groups),
		"upserted":    report.Count(OutcomeUpserted),
		"skipped":     report.Count(OutcomeSkipped),
		"rejected":    report.Count(OutcomeRejected),
		"failed":      report.Count(OutcomeUpsertFailed),
	})
	return report, nil
}

func (s *Sink) extractBatch(ctx context.Context, batch []Record, report *BatchReport) ([]*group, error) {
	var groups []*group
	byCollection := make(map[string]*group)

	for i, rec := range batch {
		res := &report.Results[i]
		res.Record = rec

		if rec.Value == nil && rec.DecodeErr == nil {
			s.skip(res)
			continue
		}

		var (
			tree       value.Value
			collection string
			point      record.Point
		)
		err := rec.DecodeErr
		if err == nil {
			tree, err = value.Normalize(rec.Value)
			if err == nil && tree.IsNull() {
				s.skip(res)
				continue
			}
		}
		if err == nil {
			collection, point, err = record.Extract(tree, s.extractOptions()...)
		}

		if err != nil {
			res.Outcome = OutcomeRejected
			res.Kind = ClassifyError(err)
			res.Err = err
			s.observeOperation("reject", "", 0, err, 1, map[string]string{"kind": string(res.Kind)})

			if s.reporter == nil {
				return nil, fmt.Errorf("[Sink] %w: %s: %w", ErrRecordRejected, rec, err)
			}
			s.logger.Warn("record rejected, reporting it", err, recordFields(rec, res.Kind))
			if reportErr := s.reporter.Report(ctx, rec, err); reportErr != nil {
				return nil, fmt.Errorf("[Sink] %w for %s: %w", ErrReportFailed, rec, reportErr)
			}
			continue
		}

		res.Collection = collection
		res.Point = &point

		g, ok := byCollection[collection]
		if !ok {
			g = &group{collection: collection}
			byCollection[collection] = g
			groups = append(groups, g)
		}
		g.indices = append(g.indices, i)
		g.points = append(g.points, point)
	}

	return groups, nil
}

func (s *Sink) skip(res *RecordResult) {
	res.Outcome = OutcomeSkipped
	s.observeOperation("skip", "", 0, nil, 1, nil)
	s.logger.Debug("skipping record with null value", nil, recordFields(res.Record, KindNone))
}

func (s *Sink) upsertGroups(ctx context.Context, batch []Record, groups []*group, report *BatchReport) error {
	var errs []error

	for _, g := range groups {
		err := s.upsertGroup(ctx, g)
		report.Groups = append(report.Groups, GroupResult{
			Collection: g.collection,
			Points:     len(g.points),
			Err:        err,
		})

		outcome, kind := OutcomeUpserted, KindNone
		if err != nil {
			outcome, kind = OutcomeUpsertFailed, KindTransport
		}
		for _, i := range g.indices {
			report.Results[i].Outcome = outcome
			report.Results[i].Kind = kind
			report.Results[i].Err = err
		}
		if err == nil {
			continue
		}

		fields := map[string]interface{}{
			"collection": g.collection,
			"points":     len(g.points),
		}
		cause := fmt.Errorf("[Sink] %w for collection %q: %w", ErrUpsertFailed, g.collection, err)
		if s.reporter == nil {
			s.logger.Error("upsert failed", err, fields)
			errs = append(errs, cause)
			continue
		}

		s.logger.Warn("upsert failed, reporting all records of the collection", err, fields)
		for _, i := range g.indices {
			if reportErr := s.reporter.Report(ctx, batch[i], cause); reportErr != nil {
				return fmt.Errorf("[Sink] %w for %s: %w", ErrReportFailed, batch[i], reportErr)
			}
		}
	}

	return errors.Join(errs...)
}

func (s *Sink) upsertGroup(ctx context.Context, g *group) error {
	ctx, span := s.startSpan(ctx, "sink.upsert")
	defer span.End()
	s.setAttributes(span, map[string]interface{}{
		"collection": g.collection,
		"points":     len(g.points),
	})

	start := time.Now()
	err := s.upserter.Upsert(ctx, g.collection, g.points)
	s.observeOperation("upsert", g.collection, time.Since(start), err, int64(len(g.points)), nil)
	if err != nil {
		s.recordError(span, err)
	}
	return err
}

func (s *Sink) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s.tracer == nil {
		return ctx, noop.Span{}
	}
	return s.tracer.StartSpan(ctx, name)
}

func (s *Sink) setAttributes(span trace.Span, attrs map[string]interface{}) {
	if s.tracer != nil {
		s.tracer.SetAttributes(span, attrs)
	}
}

func (s *Sink) recordError(span trace.Span, err error) {
	if s.tracer != nil {
		s.tracer.RecordErrorOnSpan(span, err)
	}
}

func recordFields(rec Record, kind ErrorKind) map[string]interface{} {
	fields := map[string]interface{}{
		"topic":     rec.Topic,
		"partition": rec.Partition,
		"offset":    rec.Offset,
	}
	if kind != KindNone {
		fields["kind"] = string(kind)
	}
	return fields
}
