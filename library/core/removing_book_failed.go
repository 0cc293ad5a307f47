package core

import (
	"time"
)

// RemovingBookFailedEventType is the event type identifier.
const RemovingBookFailedEventType = "RemovingBookFailed"

// RemovingBookFailed represents when removing a book from the catalog fails due to business rule violations.
type RemovingBookFailed struct {
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildRemovingBookFailed creates a new RemovingBookFailed event.
func BuildRemovingBookFailed(entityID string, failureInfo string, occurredAt time.Time) RemovingBookFailed {
	event := RemovingBookFailed{
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e RemovingBookFailed) EventType() string {
	return RemovingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RemovingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e RemovingBookFailed) IsErrorEvent() bool {
	return true
}
