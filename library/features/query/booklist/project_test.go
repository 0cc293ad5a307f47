package booklist_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/features/query/booklist"
)

func Test_Project_SortsBooksByID(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{
		core.BuildBookAdded(4711, "111111111-1", "Neuromancer", now),
		core.BuildBookAdded(1000, "222222222-2", "Dune", now.Add(time.Minute)),
		core.BuildBookAdded(2500, "333333333-3", "Solaris", now.Add(2*time.Minute)),
	}

	// act
	result := booklist.Project(history, booklist.BuildQuery(), 3)

	// assert
	require.Equal(t, 3, result.Count)
	assert.Equal(t, 1000, result.Books[0].BookID)
	assert.Equal(t, 2500, result.Books[1].BookID)
	assert.Equal(t, 4711, result.Books[2].BookID)
	assert.Equal(t, uint(3), result.GetSequenceNumber())
}

func Test_Project_TracksStatusAndRemovals(t *testing.T) {
	// arrange
	now := time.Now()
	loanID := uuid.New()
	history := core.DomainEvents{
		core.BuildBookAdded(1000, "222222222-2", "Dune", now),
		core.BuildBookAdded(2000, "333333333-3", "Solaris", now),
		core.BuildBookAdded(3000, "444444444-4", "Ubik", now),
		core.BuildBookLent(loanID, 1000, "Alice", core.MustParseDate("2024-01-01"), now),
		core.BuildBookLent(uuid.New(), 2000, "Bob", core.MustParseDate("2024-01-02"), now),
		core.BuildBookReturned(loanID.String(), 1000, core.MustParseDate("2024-01-15"), 14, 60, now),
		core.BuildBookRemoved(3000, now),
	}

	// act
	result := booklist.Project(history, booklist.BuildQuery(), 7)

	// assert
	require.Equal(t, 2, result.Count)
	assert.Equal(t, booklist.StatusAvailable, result.Books[0].Status)
	assert.False(t, result.Books[0].IsLoaned())
	assert.Equal(t, booklist.StatusLoaned, result.Books[1].Status)
	assert.True(t, result.Books[1].IsLoaned())

	_, found := result.FindByID(3000)
	assert.False(t, found, "removed book must not be listed")
}

func Test_Project_IgnoresFailureEvents(t *testing.T) {
	// arrange
	now := time.Now()
	history := core.DomainEvents{
		core.BuildBookAdded(1000, "222222222-2", "Dune", now),
		core.BuildAddingBookFailed("123", "isbn is malformed", now),
		core.BuildRemovingBookFailed("1000", "book is loaned out", now),
	}

	// act
	result := booklist.Project(history, booklist.BuildQuery(), 3)

	// assert
	assert.Equal(t, 1, result.Count)
}

func Test_BookList_FindByIDAndISBN(t *testing.T) {
	// arrange
	now := time.Now()
	result := booklist.Project(core.DomainEvents{
		core.BuildBookAdded(1000, "222222222-2", "Dune", now),
		core.BuildBookAdded(2000, "333333333-3", "Solaris", now),
	}, booklist.BuildQuery(), 2)

	// act
	byID, foundByID := result.FindByID(2000)
	byISBN, foundByISBN := result.FindByISBN("222222222-2")
	_, foundUnknownID := result.FindByID(9999)
	_, foundUnknownISBN := result.FindByISBN("999999999-9")

	// assert
	require.True(t, foundByID)
	assert.Equal(t, "Solaris", byID.Title)
	require.True(t, foundByISBN)
	assert.Equal(t, 1000, byISBN.BookID)
	assert.False(t, foundUnknownID)
	assert.False(t, foundUnknownISBN)
}

func Test_Project_EmptyHistory(t *testing.T) {
	// act
	result := booklist.Project(core.DomainEvents{}, booklist.BuildQuery(), 0)

	// assert
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Books)
}
