package core

import (
	"time"

	"github.com/google/uuid"
)

// BookLentEventType is the event type identifier.
const BookLentEventType = "BookLent"

// BookLent represents when a loan was opened for a book.
type BookLent struct {
	LoanID     LoanIDString
	BookID     BookIDInt
	Lender     string
	StartDate  DateString
	OccurredAt OccurredAtTS
}

// BuildBookLent creates a new BookLent event.
func BuildBookLent(
	loanID uuid.UUID,
	bookID BookIDInt,
	lender string,
	startDate Date,
	occurredAt time.Time,
) BookLent {

	event := BookLent{
		LoanID:     loanID.String(),
		BookID:     bookID,
		Lender:     lender,
		StartDate:  startDate.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookLent) EventType() string {
	return BookLentEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookLent) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookLent) IsErrorEvent() bool {
	return false
}
