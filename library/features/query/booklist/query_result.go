package booklist

import (
	"time"

	"github.com/AntonStoeckl/ltu-library/library/core"
)

// Status is the lending status of a book.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusLoaned    Status = "Loaned"
)

// BookInfo represents a book in the catalog.
type BookInfo struct {
	BookID  core.BookIDInt
	ISBN    core.ISBNString
	Title   string
	Status  Status
	AddedAt time.Time
}

// IsLoaned reports whether the book has an open loan.
func (b BookInfo) IsLoaned() bool {
	return b.Status == StatusLoaned
}

// BookList represents the query result containing all books in the catalog, sorted by BookID.
type BookList struct {
	Books          []BookInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the highest event sequence number included in the projection.
func (r BookList) GetSequenceNumber() uint {
	return r.SequenceNumber
}

// FindByID returns the book with the given id.
func (r BookList) FindByID(bookID core.BookIDInt) (BookInfo, bool) {
	for _, book := range r.Books {
		if book.BookID == bookID {
			return book, true
		}
	}

	return BookInfo{}, false
}

// FindByISBN returns the book with the given ISBN.
func (r BookList) FindByISBN(isbn core.ISBNString) (BookInfo, bool) {
	for _, book := range r.Books {
		if book.ISBN == isbn {
			return book, true
		}
	}

	return BookInfo{}, false
}
