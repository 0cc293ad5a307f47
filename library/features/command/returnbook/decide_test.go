package returnbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/features/command/returnbook"
)

func Test_Decide_Success_ComputesDurationAndCost(t *testing.T) {
	testCases := []struct {
		name             string
		startDate        string
		returnDate       string
		expectedDuration int
		expectedCost     int
	}{
		{name: "two weeks", startDate: "2024-01-01", returnDate: "2024-01-15", expectedDuration: 14, expectedCost: 60},
		{name: "within the free days", startDate: "2024-01-01", returnDate: "2024-01-11", expectedDuration: 10, expectedCost: 0},
		{name: "one late day", startDate: "2024-01-01", returnDate: "2024-01-12", expectedDuration: 11, expectedCost: 15},
		{name: "across a month", startDate: "2024-01-25", returnDate: "2024-02-05", expectedDuration: 10, expectedCost: 0},
		{name: "across a year", startDate: "2023-12-30", returnDate: "2024-01-01", expectedDuration: 1, expectedCost: 0},
		{name: "return before start", startDate: "2024-01-15", returnDate: "2024-01-01", expectedDuration: -14, expectedCost: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			now := time.Now()
			loanID := uuid.New()
			events := core.DomainEvents{
				givenBookAdded(t, 1000, now.Add(-2*time.Hour)),
				givenBookLent(t, loanID, 1000, tc.startDate, now.Add(-time.Hour)),
			}

			// act
			result := returnbook.Decide(events, returnbook.BuildCommand(1000, tc.returnDate, now))

			// assert
			assert.Equal(t, "success", result.Outcome)
			returnedEvent, ok := result.Event.(core.BookReturned)
			require.True(t, ok, "Expected BookReturned event")
			assert.Equal(t, loanID.String(), returnedEvent.LoanID)
			assert.Equal(t, 1000, returnedEvent.BookID)
			assert.Equal(t, tc.returnDate, returnedEvent.ReturnDate)
			assert.Equal(t, tc.expectedDuration, returnedEvent.DurationDays)
			assert.Equal(t, tc.expectedCost, returnedEvent.Cost)
		})
	}
}

func Test_Decide_ClosesTheLatestLoan(t *testing.T) {
	// arrange
	now := time.Now()
	firstLoan := uuid.New()
	secondLoan := uuid.New()
	events := core.DomainEvents{
		givenBookAdded(t, 1000, now.Add(-5*time.Hour)),
		givenBookLent(t, firstLoan, 1000, "2024-01-01", now.Add(-4*time.Hour)),
		givenBookReturned(t, firstLoan, 1000, now.Add(-3*time.Hour)),
		givenBookLent(t, secondLoan, 1000, "2024-02-01", now.Add(-2*time.Hour)),
	}

	// act
	result := returnbook.Decide(events, returnbook.BuildCommand(1000, "2024-02-03", now))

	// assert
	returnedEvent, ok := result.Event.(core.BookReturned)
	require.True(t, ok, "Expected BookReturned event")
	assert.Equal(t, secondLoan.String(), returnedEvent.LoanID)
	assert.Equal(t, 2, returnedEvent.DurationDays)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	now := time.Now()
	loanID := uuid.New()

	testCases := []struct {
		name           string
		events         core.DomainEvents
		returnDate     string
		expectedErr    error
		expectedKind   error
		expectedReason string
	}{
		{
			name:           "unknown book",
			events:         core.DomainEvents{},
			returnDate:     "2024-01-15",
			expectedErr:    returnbook.ErrBookIsNotLoaned,
			expectedKind:   core.ErrNotFound,
			expectedReason: "book is not currently loaned",
		},
		{
			name:           "book never lent",
			events:         core.DomainEvents{givenBookAdded(t, 1000, now)},
			returnDate:     "2024-01-15",
			expectedErr:    returnbook.ErrBookIsNotLoaned,
			expectedKind:   core.ErrNotFound,
			expectedReason: "book is not currently loaned",
		},
		{
			name: "book already returned",
			events: core.DomainEvents{
				givenBookAdded(t, 1000, now.Add(-3*time.Hour)),
				givenBookLent(t, loanID, 1000, "2024-01-01", now.Add(-2*time.Hour)),
				givenBookReturned(t, loanID, 1000, now.Add(-time.Hour)),
			},
			returnDate:     "2024-01-15",
			expectedErr:    returnbook.ErrBookIsNotLoaned,
			expectedKind:   core.ErrNotFound,
			expectedReason: "book is not currently loaned",
		},
		{
			name: "return date with wrong shape",
			events: core.DomainEvents{
				givenBookAdded(t, 1000, now.Add(-time.Hour)),
				givenBookLent(t, loanID, 1000, "2024-01-01", now),
			},
			returnDate:     "15.01.2024",
			expectedErr:    returnbook.ErrReturnDateMalformed,
			expectedKind:   core.ErrValidation,
			expectedReason: "date is malformed",
		},
		{
			name: "return date with month 00",
			events: core.DomainEvents{
				givenBookAdded(t, 1000, now.Add(-time.Hour)),
				givenBookLent(t, loanID, 1000, "2024-01-01", now),
			},
			returnDate:     "2024-00-15",
			expectedErr:    returnbook.ErrReturnDateMalformed,
			expectedKind:   core.ErrValidation,
			expectedReason: "date is malformed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := returnbook.Decide(tc.events, returnbook.BuildCommand(1000, tc.returnDate, now))

			// assert
			assert.Equal(t, "error", result.Outcome)
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			assert.ErrorIs(t, result.HasError(), tc.expectedKind)

			failureEvent, ok := result.Event.(core.ReturningBookFailed)
			require.True(t, ok, "Expected ReturningBookFailed event")
			assert.Equal(t, "1000", failureEvent.EntityID)
			assert.Equal(t, tc.expectedReason, failureEvent.FailureInfo)
		})
	}
}

func givenBookAdded(t *testing.T, bookID int, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookAdded(bookID, "123456789-0", "Dune", at)
}

func givenBookLent(t *testing.T, loanID uuid.UUID, bookID int, startDate string, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookLent(loanID, bookID, "Alice", core.MustParseDate(startDate), at)
}

func givenBookReturned(t *testing.T, loanID uuid.UUID, bookID int, at time.Time) core.DomainEvent {
	t.Helper()
	return core.BuildBookReturned(loanID.String(), bookID, core.MustParseDate("2024-01-15"), 14, 60, at)
}
