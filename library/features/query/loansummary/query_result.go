package loansummary

import (
	"github.com/AntonStoeckl/ltu-library/library/core"
)

// ClosedLoan is one row of the summary.
// RunningCount and RunningTotal include this row and all closed loans lent before it.
type ClosedLoan struct {
	LoanID       core.LoanIDString
	BookID       core.BookIDInt
	Lender       string
	StartDate    core.DateString
	ReturnDate   core.DateString
	DurationDays int
	Cost         int
	RunningCount int
	RunningTotal int
}

// LedgerEntry is one loan of the ledger, open or closed.
// For an open loan ReturnDate, DurationDays and Cost are empty, the running totals are those
// of the closed loans lent before it.
type LedgerEntry struct {
	ClosedLoan
	Closed bool
}

// LoanSummary represents the query result.
// Ledger holds every loan in the order it was lent, Loans holds the closed ones in the same order.
type LoanSummary struct {
	Ledger           []LedgerEntry
	Loans            []ClosedLoan
	TotalClosedLoans int
	TotalRevenue     int
	SequenceNumber   uint
}

// GetSequenceNumber returns the highest event sequence number included in the projection.
func (r LoanSummary) GetSequenceNumber() uint {
	return r.SequenceNumber
}
