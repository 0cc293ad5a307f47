package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/shell"
)

func Test_StorableEventFrom_Then_DomainEventFrom_PreservesTheEvent(t *testing.T) {
	// arrange
	occurredAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	event := core.BuildBookLent(uuid.New(), 1234, "Alice", core.MustParseDate("2024-01-01"), occurredAt)
	metadata := shell.NewCommandEventMetadata()

	// act
	storableEvent, err := shell.StorableEventFrom(event, metadata)
	require.NoError(t, err)

	domainEvent, err := shell.DomainEventFrom(storableEvent)
	require.NoError(t, err)

	extractedMetadata, err := shell.EventMetadataFrom(storableEvent)
	require.NoError(t, err)

	// assert
	assert.Equal(t, core.BookLentEventType, storableEvent.EventType)
	assert.Equal(t, occurredAt, storableEvent.OccurredAt)
	assert.Equal(t, event, domainEvent)
	assert.Equal(t, metadata, extractedMetadata)
	assert.Equal(t, metadata.MessageID, metadata.CorrelationID)
}

func Test_StorableEventFrom_PayloadIsFilterable(t *testing.T) {
	// arrange
	event := core.BuildBookAdded(1234, "123456789-0", "Dune", time.Now())

	// act
	storableEvent, err := shell.StorableEventFrom(event, shell.NewCommandEventMetadata())

	// assert
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"BookID": 1234, "ISBN": "123456789-0", "Title": "Dune", "OccurredAt": "`+event.OccurredAt.Format(time.RFC3339Nano)+`"}`,
		string(storableEvent.PayloadJSON),
	)
}

func Test_DomainEventsFrom_MapsEveryEventType(t *testing.T) {
	// arrange
	now := time.Now()
	events := core.DomainEvents{
		core.BuildBookAdded(1000, "123456789-0", "Dune", now),
		core.BuildBookRemoved(1000, now),
		core.BuildBookLent(uuid.New(), 1000, "Alice", core.MustParseDate("2024-01-01"), now),
		core.BuildBookReturned(uuid.NewString(), 1000, core.MustParseDate("2024-01-15"), 14, 60, now),
		core.BuildAddingBookFailed("123456789-0", "isbn already exists", now),
		core.BuildRemovingBookFailed("1000", "book does not exist", now),
		core.BuildLendingBookFailed("1000", "book is already loaned", now),
		core.BuildReturningBookFailed("1000", "book is not currently loaned", now),
	}

	storableEvents := make(eventstore.StorableEvents, 0, len(events))
	for _, event := range events {
		storableEvent, err := shell.StorableEventFrom(event, shell.NewCommandEventMetadata())
		require.NoError(t, err)
		storableEvents = append(storableEvents, storableEvent)
	}

	// act
	domainEvents, err := shell.DomainEventsFrom(storableEvents)

	// assert
	require.NoError(t, err)
	assert.Equal(t, events, domainEvents)
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	// arrange
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata("BookShredded", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventFrom_BrokenPayload(t *testing.T) {
	// arrange
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata(core.BookAddedEventType, time.Now(), []byte(`{"BookID": "not a number"}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
}
