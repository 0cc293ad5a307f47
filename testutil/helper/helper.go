package helper

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/eventstore/memoryengine"
	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/shell"
)

// SetupTestEnvironment returns a context that is canceled with the test,
// and an empty event store.
func SetupTestEnvironment(t testing.TB, opts ...memoryengine.Option) (context.Context, *memoryengine.EventStore) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	es, err := memoryengine.NewEventStore(opts...)
	require.NoError(t, err, "error in arranging test data")

	return ctx, es
}

// GivenEventsAppended appends domain events one by one, without any business rule checks.
func GivenEventsAppended(t testing.TB, ctx context.Context, es *memoryengine.EventStore, events ...core.DomainEvent) {
	t.Helper()

	anyEvent := eventstore.BuildEventFilter().MatchingAnyEvent()

	for _, event := range events {
		storableEvent, err := shell.StorableEventFrom(event, shell.NewCommandEventMetadata())
		require.NoError(t, err, "error in arranging test data")

		_, maxSequenceNumber, err := es.Query(ctx, anyEvent)
		require.NoError(t, err, "error in arranging test data")

		require.NoError(t, es.Append(ctx, anyEvent, maxSequenceNumber, storableEvent), "error in arranging test data")
	}
}

// QueryAllDomainEvents returns the whole history of the store as domain events.
func QueryAllDomainEvents(t testing.TB, ctx context.Context, es *memoryengine.EventStore) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)

	domainEvents, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return domainEvents
}

// AssertLastEventType asserts the type of the most recently appended event.
func AssertLastEventType(t testing.TB, ctx context.Context, es *memoryengine.EventStore, expected string) {
	t.Helper()

	events := QueryAllDomainEvents(t, ctx, es)
	require.NotEmpty(t, events, "store is empty")
	assert.Equal(t, expected, events[len(events)-1].EventType())
}

// FilterAllEventTypesForOneBook matches the catalog and loan events of one book id.
func FilterAllEventTypesForOneBook(bookID core.BookIDInt) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedEventType,
			core.BookRemovedEventType,
			core.BookLentEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", strconv.Itoa(bookID))).
		Finalize()
}
