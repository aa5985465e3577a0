// Package sink writes batches of raw records into collections.
//
// Each batch goes through three stages:
//
//  1. Every record is normalized into a value tree and turned into a point
//     (see packages value, vector and record). Records with a null value are
//     skipped.
//  2. Points are grouped by destination collection, keeping the order in which
//     collections first appear in the batch.
//  3. Each group is written with a single Upserter call.
//
// Failure handling:
//
// A record that cannot be turned into a point affects only that record when an
// ErrorReporter is configured: it is reported and the batch continues. Without
// a reporter the whole batch fails before anything is written.
//
// A failed upsert affects every record of its collection group. With a
// reporter each of those records is reported; without one the failure is
// returned after all other groups have been attempted. Other groups are never
// held back by a failing one.
//
// A failing ErrorReporter always aborts the batch.
//
// Basic Usage:
//
//	s := sink.NewSink(sink.Config{}, qdrantClient, log).
//	    WithErrorReporter(deadLetter)
//
//	report, err := s.Process(ctx, records)
//	if err != nil {
//	    // the batch must not be committed
//	}
//	log.Info("batch done", nil, map[string]interface{}{
//	    "upserted": report.Count(sink.OutcomeUpserted),
//	})
//
// FX Module Integration:
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    sink.FXModule,
//	)
//
// Thread Safety:
//
// A Sink holds no per-batch state and may be shared, but batches from one
// stream are expected to be processed one at a time to keep offsets ordered.
package sink
