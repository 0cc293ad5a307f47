package core

import (
	"time"
)

// BookRemovedEventType is the event type identifier.
const BookRemovedEventType = "BookRemoved"

// BookRemoved represents when a book was removed from the catalog.
type BookRemoved struct {
	BookID     BookIDInt
	OccurredAt OccurredAtTS
}

// BuildBookRemoved creates a new BookRemoved event.
func BuildBookRemoved(bookID BookIDInt, occurredAt time.Time) BookRemoved {
	event := BookRemoved{
		BookID:     bookID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookRemoved) EventType() string {
	return BookRemovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookRemoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookRemoved) IsErrorEvent() bool {
	return false
}
