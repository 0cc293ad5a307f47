package loansummary

import (
	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
)

// Project implements the query logic to summarize the loan ledger.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: All loan events in the system
//	WHEN: LoanSummary query is executed
//	THEN: LoanSummary is returned with one ledger entry per loan and one row per closed loan
//	INCLUDES: Loans with a BookReturned event in the rows and totals
//	EXCLUDES: Open loans from the rows and totals
//	ORDER: Ledger order, which is the order of the BookLent events
func Project(history core.DomainEvents, _ Query, maxSequence uint) LoanSummary {
	ledger := make([]LedgerEntry, 0)
	openLoans := make(map[core.LoanIDString]int)
	lentEvents := make([]core.BookLent, 0)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookLent:
			openLoans[e.LoanID] = len(ledger)
			lentEvents = append(lentEvents, e)
			ledger = append(ledger, LedgerEntry{ClosedLoan: ClosedLoan{
				LoanID:    e.LoanID,
				BookID:    e.BookID,
				Lender:    e.Lender,
				StartDate: e.StartDate,
			}})

		case core.BookReturned:
			idx, ok := openLoans[e.LoanID]
			if !ok {
				continue
			}
			delete(openLoans, e.LoanID)

			durationDays, cost := recompute(lentEvents[idx], e)

			ledger[idx].Closed = true
			ledger[idx].ReturnDate = e.ReturnDate
			ledger[idx].DurationDays = durationDays
			ledger[idx].Cost = cost
		}
	}

	summary := LoanSummary{
		Ledger:         ledger,
		Loans:          make([]ClosedLoan, 0),
		SequenceNumber: maxSequence,
	}

	for i := range summary.Ledger {
		entry := &summary.Ledger[i]
		if entry.Closed {
			summary.TotalClosedLoans++
			summary.TotalRevenue += entry.Cost
		}

		entry.RunningCount = summary.TotalClosedLoans
		entry.RunningTotal = summary.TotalRevenue

		if entry.Closed {
			summary.Loans = append(summary.Loans, entry.ClosedLoan)
		}
	}

	return summary
}

// recompute derives duration and cost from the loan dates with the current fee rules.
// Dates that don't parse fall back to the values recorded at return time.
func recompute(lent core.BookLent, returned core.BookReturned) (int, int) {
	startDate, startErr := core.ParseDate(lent.StartDate)
	returnDate, returnErr := core.ParseDate(returned.ReturnDate)
	if startErr != nil || returnErr != nil {
		return returned.DurationDays, returned.Cost
	}

	durationDays := core.DaysBetween(startDate, returnDate)

	return durationDays, core.LateFee(durationDays)
}

// BuildEventFilter creates the filter for querying all loan events
// which are relevant for this query/use-case.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookLentEventType,
			core.BookReturnedEventType,
		).
		Finalize()
}
