// Package memoryengine provides a process-local implementation of the eventstore contract.
//
// Events live in an append-only slice guarded by a mutex. Every event gets a global,
// gapless sequence number starting at 1. Queries evaluate eventstore.Filter against the
// event type and the JSON payload, appends are protected by optimistic concurrency:
// Append re-evaluates the filter and fails with eventstore.ErrConcurrencyConflict when
// the highest matching sequence number is not the one the caller expected.
//
// Nothing is persisted. A new EventStore starts empty.
//
// Usage:
//
//	es, err := memoryengine.NewEventStore(memoryengine.WithLogger(slog.Default()))
//	events, maxSeq, err := es.Query(ctx, filter)
//	err = es.Append(ctx, filter, maxSeq, event)
package memoryengine
