package addbook

import (
	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
)

const (
	DefaultCapacity = 100

	FailureReasonCapacityReached = "library capacity reached"
	FailureReasonISBNMalformed   = "isbn is malformed"
	FailureReasonISBNExists      = "isbn already exists"
)

var (
	ErrCapacityReached = core.BusinessError(core.ErrConflict, core.AddingBookFailedEventType, FailureReasonCapacityReached)
	ErrISBNMalformed   = core.BusinessError(core.ErrValidation, core.AddingBookFailedEventType, FailureReasonISBNMalformed)
	ErrISBNExists      = core.BusinessError(core.ErrConflict, core.AddingBookFailedEventType, FailureReasonISBNExists)
)

// state is the catalog as far as adding a book is concerned.
type state struct {
	isbnByBookID map[core.BookIDInt]core.ISBNString
}

func (s state) bookCount() int {
	return len(s.isbnByBookID)
}

func (s state) bookIDTaken(bookID core.BookIDInt) bool {
	_, taken := s.isbnByBookID[bookID]
	return taken
}

func (s state) isbnTaken(isbn core.ISBNString) bool {
	for _, taken := range s.isbnByBookID {
		if taken == isbn {
			return true
		}
	}

	return false
}

// Decide implements the business logic to determine whether a book should be added to the catalog.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A title, an ISBN and an id that the CommandHandler has assigned
//	WHEN: AddBook command is received
//	THEN: BookAdded event is generated
//	ERROR: "library capacity reached" if the catalog already holds capacity books
//	ERROR: "isbn is malformed" if the ISBN is not in the form 123456789-0
//	ERROR: "isbn already exists" if a book in the catalog has the same ISBN
//
// The rules are checked in this order.
func Decide(history core.DomainEvents, command Command, capacity int) core.DecisionResult {
	s := project(history)

	if s.bookCount() >= capacity {
		return failed(command, FailureReasonCapacityReached, ErrCapacityReached)
	}

	if err := core.ValidateCommand(command); err != nil {
		return failed(command, FailureReasonISBNMalformed, ErrISBNMalformed)
	}

	if s.isbnTaken(command.ISBN) {
		return failed(command, FailureReasonISBNExists, ErrISBNExists)
	}

	return core.SuccessDecision(
		core.BuildBookAdded(command.BookID, command.ISBN, command.Title, command.OccurredAt),
	)
}

func failed(command Command, reason string, err error) core.DecisionResult {
	event := core.BuildAddingBookFailed(command.ISBN, reason, command.OccurredAt)
	return core.ErrorDecision(event, err)
}

// project builds the current catalog by replaying all events from the history.
func project(history core.DomainEvents) state {
	s := state{isbnByBookID: make(map[core.BookIDInt]core.ISBNString)}

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			s.isbnByBookID[e.BookID] = e.ISBN

		case core.BookRemoved:
			delete(s.isbnByBookID, e.BookID)
		}
	}

	return s
}

// BuildEventFilter creates the filter for querying all events that shape the catalog.
// Adding a book depends on the whole catalog, so there is no predicate.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedEventType,
			core.BookRemovedEventType,
		).
		Finalize()
}
