package removebook

import (
	"strconv"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
)

const (
	FailureReasonBookDoesNotExist = "book does not exist"
	FailureReasonBookIsLoanedOut  = "book is loaned out"
)

var (
	ErrBookDoesNotExist = core.BusinessError(core.ErrNotFound, core.RemovingBookFailedEventType, FailureReasonBookDoesNotExist)
	ErrBookIsLoanedOut  = core.BusinessError(core.ErrConflict, core.RemovingBookFailedEventType, FailureReasonBookIsLoanedOut)
)

// state represents the current state projected from the event history.
type state struct {
	bookExists bool
	bookIsLent bool
	title      string
}

// Decide implements the business logic to determine whether a book should be removed from the catalog.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: RemoveBook command is received
//	THEN: BookRemoved event is generated
//	ERROR: "book does not exist" if no book with BookID is in the catalog
//	ERROR: "book is loaned out" if the book has an open loan
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := project(history, command.BookID)

	if !s.bookExists {
		return failed(command, FailureReasonBookDoesNotExist, ErrBookDoesNotExist)
	}

	if s.bookIsLent {
		return failed(command, FailureReasonBookIsLoanedOut, ErrBookIsLoanedOut)
	}

	return core.SuccessDecision(core.BuildBookRemoved(command.BookID, command.OccurredAt))
}

func failed(command Command, reason string, err error) core.DecisionResult {
	event := core.BuildRemovingBookFailed(strconv.Itoa(command.BookID), reason, command.OccurredAt)
	return core.ErrorDecision(event, err)
}

// project builds the current state by replaying all events from the history.
// Ids are reused after removal, so BookAdded starts the state of the book from scratch.
func project(history core.DomainEvents, bookID core.BookIDInt) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			if e.BookID == bookID {
				s = state{bookExists: true, title: e.Title}
			}

		case core.BookRemoved:
			if e.BookID == bookID {
				s = state{}
			}

		case core.BookLent:
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
