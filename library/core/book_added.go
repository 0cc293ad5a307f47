package core

import (
	"time"
)

// BookAddedEventType is the event type identifier.
const BookAddedEventType = "BookAdded"

// BookAdded represents when a book was added to the catalog.
type BookAdded struct {
	BookID     BookIDInt
	ISBN       ISBNString
	Title      string
	OccurredAt OccurredAtTS
}

// BuildBookAdded creates a new BookAdded event.
func BuildBookAdded(bookID BookIDInt, isbn ISBNString, title string, occurredAt time.Time) BookAdded {
	event := BookAdded{
		BookID:     bookID,
		ISBN:       isbn,
		Title:      title,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookAdded) EventType() string {
	return BookAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAdded) IsErrorEvent() bool {
	return false
}
