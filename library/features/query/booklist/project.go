package booklist

import (
	"cmp"
	"slices"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
)

// Project implements the query logic to determine all books in the catalog.
// This is a pure function with no side effects.
//
// Query Logic:
//
//	GIVEN: All catalog and loan events in the system
//	WHEN: BookList query is executed
//	THEN: BookList is returned with one entry per book in the catalog
//	INCLUDES: Books that were added and not removed
//	EXCLUDES: Removed books
//	DETAILS: Status is Loaned while a loan is open, Available otherwise
//	ORDER: BookID ascending
func Project(history core.DomainEvents, _ Query, maxSequence uint) BookList {
	books := make(map[core.BookIDInt]*BookInfo)

	for _, event := range history {
		switch e := event.(type) {
		case core.BookAdded:
			books[e.BookID] = &BookInfo{
				BookID:  e.BookID,
				ISBN:    e.ISBN,
				Title:   e.Title,
				Status:  StatusAvailable,
				AddedAt: e.OccurredAt,
			}

		case core.BookRemoved:
			delete(books, e.BookID)

		case core.BookLent:
			if book := books[e.BookID]; book != nil {
				book.Status = StatusLoaned
			}

		case core.BookReturned:
			if book := books[e.BookID]; book != nil {
				book.Status = StatusAvailable
			}
		}
	}

	bookList := make([]BookInfo, 0, len(books))
	for _, book := range books {
		bookList = append(bookList, *book)
	}
	slices.SortFunc(bookList, func(a, b BookInfo) int {
		return cmp.Compare(a.BookID, b.BookID)
	})

	return BookList{
		Books:          bookList,
		Count:          len(bookList),
		SequenceNumber: maxSequence,
	}
}

// BuildEventFilter creates the filter for querying all events
// which are relevant for this query/use-case.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookAddedEventType,
			core.BookRemovedEventType,
			core.BookLentEventType,
			core.BookReturnedEventType,
		).
		Finalize()
}
