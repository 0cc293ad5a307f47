// Package eventstore provides the storage-agnostic abstractions of the library's event store.
//
// It defines filters, storable events and the observability
// interfaces shared by engines and handlers. The event store engine lives in the
// memoryengine subpackage.
//
// Events are selected with dynamic filters over:
//   - event types
//   - JSON payload predicates (key equals value)
//
// Common usage pattern:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.BookLentEventType, core.BookReturnedEventType).
//		AndAnyPredicateOf(eventstore.P("BookID", "4711")).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	err = store.Append(ctx, filter, maxSeq, newEvent)
//	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
//		// somebody else appended a matching event, query again and retry
//	}
package eventstore
