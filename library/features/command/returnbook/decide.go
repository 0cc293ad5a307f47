package returnbook

import (
	"strconv"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
)

const (
	FailureReasonBookIsNotLoaned = "book is not currently loaned"
	FailureReasonDateMalformed   = "date is malformed"
)

var (
	ErrBookIsNotLoaned     = core.BusinessError(core.ErrNotFound, core.ReturningBookFailedEventType, FailureReasonBookIsNotLoaned)
	ErrReturnDateMalformed = core.BusinessError(core.ErrValidation, core.ReturningBookFailedEventType, FailureReasonDateMalformed)
)

// openLoan is the loan a return closes.
type openLoan struct {
	loanID    core.LoanIDString
	lender    string
	startDate core.DateString
}

// state represents the current state projected from the event history.
type state struct {
	title    string
	isbn     core.ISBNString
	openLoan *openLoan
}

// Decide implements the business logic to determine whether a loan should be closed.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a return date
//	WHEN: ReturnBook command is received
//	THEN: BookReturned event is generated with DurationDays = DaysBetween(start, return)
//	      and Cost = LateFee(DurationDays)
//	ERROR: "book is not currently loaned" if the book has no open loan, unknown books included
//	ERROR: "date is malformed" if ReturnDate is not a valid YYYY-MM-DD
//
// A return date before the start date is accepted. The duration is negative then and the fee is 0.
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID)

	if s.openLoan == nil {
		return failed(command, FailureReasonBookIsNotLoaned, ErrBookIsNotLoaned)
	}

	if err := core.ValidateCommand(command); err != nil {
		return failed(command, FailureReasonDateMalformed, ErrReturnDateMalformed)
	}

	// The loandate rule has parsed it already.
	returnDate, _ := core.ParseDate(command.ReturnDate)

	// Start dates were validated when the loan was opened.
	startDate, err := core.ParseDate(s.openLoan.startDate)
	if err != nil {
		return failed(command, FailureReasonDateMalformed, ErrReturnDateMalformed)
	}

	durationDays := core.DaysBetween(startDate, returnDate)

	return core.SuccessDecision(
		core.BuildBookReturned(
			s.openLoan.loanID,
			command.BookID,
			returnDate,
			durationDays,
			core.LateFee(durationDays),
			command.OccurredAt,
		),
	)
}

func failed(command Command, reason string, err error) core.DecisionResult {
	event := core.BuildReturningBookFailed(strconv.Itoa(command.BookID), reason, command.OccurredAt)
	return core.ErrorDecision(event, err)
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, bookID core.BookIDInt) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			if e.BookID == bookID {
				s = state{title: e.Title, isbn: e.ISBN}
			}

		case core.BookRemoved:
			if e.BookID == bookID {
				s = state{}
			}

		case core.BookLent:
			if e.BookID == bookID {
				s.openLoan = &openLoan{loanID: e.LoanID, lender: e.Lender, startDate: e.StartDate}
			}

		case core.BookReturned:
			if e.BookID == bookID {
				s.openLoan = nil
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events
// related to the specified book which are relevant for this feature/use-case.
func BuildEventFilter(bookID core.BookIDInt) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedEventType,
			core.BookRemovedEventType,
			core.BookLentEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", strconv.Itoa(bookID))).
		Finalize()
}
