package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when an open loan was closed.
// DurationDays and Cost are fixed at return time with DaysBetween and LateFee.
type BookReturned struct {
	LoanID       LoanIDString
	BookID       BookIDInt
	ReturnDate   DateString
	DurationDays int
	Cost         int
	OccurredAt   OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	loanID LoanIDString,
	bookID BookIDInt,
	returnDate Date,
	durationDays int,
	cost int,
	occurredAt time.Time,
) BookReturned {

	event := BookReturned{
		LoanID:       loanID,
		BookID:       bookID,
		ReturnDate:   returnDate.String(),
		DurationDays: durationDays,
		Cost:         cost,
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookReturned) EventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}
