package core

import (
	"time"
)

// LendingBookFailedEventType is the event type identifier.
const LendingBookFailedEventType = "LendingBookFailed"

// LendingBookFailed represents when lending a book fails due to business rule violations.
type LendingBookFailed struct {
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildLendingBookFailed creates a new LendingBookFailed event.
func BuildLendingBookFailed(entityID string, failureInfo string, occurredAt time.Time) LendingBookFailed {
	event := LendingBookFailed{
		EntityID:    entityID,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e LendingBookFailed) EventType() string {
	return LendingBookFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e LendingBookFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e LendingBookFailed) IsErrorEvent() bool {
	return true
}
