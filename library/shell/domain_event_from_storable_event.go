package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookAddedEventType:
		return unmarshalPayload[core.BookAdded](storableEvent.PayloadJSON)

	case core.BookRemovedEventType:
		return unmarshalPayload[core.BookRemoved](storableEvent.PayloadJSON)

	case core.BookLentEventType:
		return unmarshalPayload[core.BookLent](storableEvent.PayloadJSON)

	case core.BookReturnedEventType:
		return unmarshalPayload[core.BookReturned](storableEvent.PayloadJSON)

	case core.AddingBookFailedEventType:
		return unmarshalPayload[core.AddingBookFailed](storableEvent.PayloadJSON)

	case core.RemovingBookFailedEventType:
		return unmarshalPayload[core.RemovingBookFailed](storableEvent.PayloadJSON)

	case core.LendingBookFailedEventType:
		return unmarshalPayload[core.LendingBookFailed](storableEvent.PayloadJSON)

	case core.ReturningBookFailedEventType:
		return unmarshalPayload[core.ReturningBookFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
