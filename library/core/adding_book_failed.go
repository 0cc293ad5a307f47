package core

import (
	"time"
)

// AddingBookFailedEventType is the event type identifier.
const AddingBookFailedEventType = "AddingBookFailed"

// AddingBookFailed represents when adding a book to the catalog fails due to business rule violations.
// EntityID is the ISBN, since no book id is assigned when adding fails.
type AddingBookFailed struct {
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildAddingBookFailed creates a new AddingBookFailed event.
func BuildAddingBookFailed(entityID string, failureInfo string, occurredAt time.Time) AddingBookFailed {
	event := AddingBookFailed{
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e AddingBookFailed) EventType() string {
	return AddingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e AddingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e AddingBookFailed) IsErrorEvent() bool {
	return true
}
