package lendbook

import (
	"strconv"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
)

const (
	DefaultCapacity = 100

	FailureReasonBookDoesNotExist      = "book does not exist"
	FailureReasonBookIsAlreadyLoaned   = "book is already loaned"
	FailureReasonLedgerCapacityReached = "ledger capacity reached"
	FailureReasonDateMalformed         = "date is malformed"
)

var (
	ErrBookDoesNotExist = core.BusinessError(
		core.ErrNotFound, core.LendingBookFailedEventType, FailureReasonBookDoesNotExist,
	)
	ErrBookIsAlreadyLoaned = core.BusinessError(
		core.ErrConflict, core.LendingBookFailedEventType, FailureReasonBookIsAlreadyLoaned,
	)
	ErrLedgerCapacityReached = core.BusinessError(
		core.ErrConflict, core.LendingBookFailedEventType, FailureReasonLedgerCapacityReached,
	)
	ErrStartDateMalformed = core.BusinessError(
		core.ErrValidation, core.LendingBookFailedEventType, FailureReasonDateMalformed,
	)
)

// state represents the current state projected from the event history.
type state struct {
	bookExists bool
	bookIsLent bool
	title      string
	loanCount  int
}

// Decide implements the business logic to determine whether a loan should be opened.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID, a lender and a start date
//	WHEN: LendBook command is received
//	THEN: BookLent event is generated
//	ERROR: "book does not exist" if no book with BookID is in the catalog
//	ERROR: "book is already loaned" if the book has an open loan
//	ERROR: "ledger capacity reached" if the ledger already holds capacity loans
//	ERROR: "date is malformed" if StartDate is not a valid YYYY-MM-DD
func Decide(history core.DomainEvents, command Command, capacity int) core.DecisionResult {
	s := project(history, command.BookID)

	if !s.bookExists {
		return failed(command, FailureReasonBookDoesNotExist, ErrBookDoesNotExist)
	}

	if s.bookIsLent {
		return failed(command, FailureReasonBookIsAlreadyLoaned, ErrBookIsAlreadyLoaned)
	}

	if s.loanCount >= capacity {
		return failed(command, FailureReasonLedgerCapacityReached, ErrLedgerCapacityReached)
	}

	if err := core.ValidateCommand(command); err != nil {
		return failed(command, FailureReasonDateMalformed, ErrStartDateMalformed)
	}

	// The loandate rule has parsed it already.
	startDate, _ := core.ParseDate(command.StartDate)

	return core.SuccessDecision(
		core.BuildBookLent(command.LoanID, command.BookID, command.Lender, startDate, command.OccurredAt),
	)
}

func failed(command Command, reason string, err error) core.DecisionResult {
	event := core.BuildLendingBookFailed(strconv.Itoa(command.BookID), reason, command.OccurredAt)
	return core.ErrorDecision(event, err)
}

// project builds the current state by replaying all events from the history.
// The history holds the events of the book plus every BookLent event of the ledger.
func project(history core.DomainEvents, bookID core.BookIDInt) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			if e.BookID == bookID {
				s.bookExists = true
				s.bookIsLent = false
				s.title = e.Title
			}

		case core.BookRemoved:
			if e.BookID == bookID {
				s.bookExists = false
				s.bookIsLent = false
				s.title = ""
			}

		case core.BookLent:
			s.loanCount++

			if e.BookID == bookID {
				s.bookIsLent = true
			}

		case core.BookReturned:
			if e.BookID == bookID {
				s.bookIsLent = false
			}
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying the events of the book and all loans of the ledger.
func BuildEventFilter(bookID core.BookIDInt) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedEventType,
			core.BookRemovedEventType,
			core.BookReturnedEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", strconv.Itoa(bookID))).
		OrMatching().
		AnyEventTypeOf(core.BookLentEventType).
		Finalize()
}
