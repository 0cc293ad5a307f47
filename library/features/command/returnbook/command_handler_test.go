package returnbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/features/command/returnbook"
	"github.com/AntonStoeckl/ltu-library/testutil/helper"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	loanID := uuid.New()
	helper.GivenEventsAppended(t, ctx, es,
		core.BuildBookAdded(1000, "123456789-0", "Dune", time.Now()),
		core.BuildBookLent(loanID, 1000, "Alice", core.MustParseDate("2024-01-01"), time.Now()),
	)
	handler := returnbook.NewCommandHandler(es)

	// act
	receipt, err := handler.Handle(ctx, returnbook.BuildCommand(1000, "2024-01-15", time.Now()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, loanID.String(), receipt.LoanID)
	assert.Equal(t, "Alice", receipt.Lender)
	assert.Equal(t, "Dune", receipt.Title)
	assert.Equal(t, "123456789-0", receipt.ISBN)
	assert.Equal(t, "2024-01-01", receipt.StartDate)
	assert.Equal(t, "2024-01-15", receipt.ReturnDate)
	assert.Equal(t, 14, receipt.DurationDays)
	assert.Equal(t, 60, receipt.Cost)
	assert.Equal(t, 1, receipt.RetryAttempts)
	helper.AssertLastEventType(t, ctx, es, core.BookReturnedEventType)
}

func Test_CommandHandler_Handle_SecondReturnFails(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es,
		core.BuildBookAdded(1000, "123456789-0", "Dune", time.Now()),
		core.BuildBookLent(uuid.New(), 1000, "Alice", core.MustParseDate("2024-01-01"), time.Now()),
	)
	handler := returnbook.NewCommandHandler(es)
	_, err := handler.Handle(ctx, returnbook.BuildCommand(1000, "2024-01-15", time.Now()))
	require.NoError(t, err)

	// act
	receipt, err := handler.Handle(ctx, returnbook.BuildCommand(1000, "2024-01-16", time.Now()))

	// assert
	assert.ErrorIs(t, err, returnbook.ErrBookIsNotLoaned)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, receipt.LoanID)
	helper.AssertLastEventType(t, ctx, es, core.ReturningBookFailedEventType)
}

func Test_CommandHandler_Handle_Error_MalformedDateKeepsLoanOpen(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es,
		core.BuildBookAdded(1000, "123456789-0", "Dune", time.Now()),
		core.BuildBookLent(uuid.New(), 1000, "Alice", core.MustParseDate("2024-01-01"), time.Now()),
	)
	handler := returnbook.NewCommandHandler(es)

	// act
	_, err := handler.Handle(ctx, returnbook.BuildCommand(1000, "2024-1-15", time.Now()))

	// assert
	assert.ErrorIs(t, err, returnbook.ErrReturnDateMalformed)

	receipt, err := handler.Handle(ctx, returnbook.BuildCommand(1000, "2024-01-15", time.Now()))
	require.NoError(t, err, "the loan must still be open")
	assert.Equal(t, 60, receipt.Cost)
}
