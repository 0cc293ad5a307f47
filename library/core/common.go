package core

import (
	"time"
)

// BookIDInt is the system-assigned id of a book.
type BookIDInt = int

// LoanIDString is the uuid string that identifies a loan.
type LoanIDString = string

// ISBNString is an ISBN-10 in the form 123456789-0.
type ISBNString = string

// DateString is a loan date in the form YYYY-MM-DD.
type DateString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
