package lendbook_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/eventstore"
	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/features/command/lendbook"
	"github.com/AntonStoeckl/ltu-library/library/shell"
	"github.com/AntonStoeckl/ltu-library/testutil/helper"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es, core.BuildBookAdded(1000, "123456789-0", "Dune", time.Now()))
	handler := lendbook.NewCommandHandler(es)
	command := lendbook.BuildCommand(1000, "Alice", "2024-01-01", time.Now())

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, command.LoanID.String(), result.LoanID)
	assert.Equal(t, "Dune", result.Title)
	assert.Equal(t, "Alice", result.Lender)
	assert.Equal(t, "2024-01-01", result.StartDate)
	helper.AssertLastEventType(t, ctx, es, core.BookLentEventType)
}

func Test_CommandHandler_Handle_Error_BookAlreadyLoaned(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es,
		core.BuildBookAdded(1000, "123456789-0", "Dune", time.Now()),
		core.BuildBookLent(uuid.New(), 1000, "Bob", core.MustParseDate("2023-12-01"), time.Now()),
	)
	handler := lendbook.NewCommandHandler(es)

	// act
	result, err := handler.Handle(ctx, lendbook.BuildCommand(1000, "Alice", "2024-01-01", time.Now()))

	// assert
	assert.ErrorIs(t, err, lendbook.ErrBookIsAlreadyLoaned)
	assert.Empty(t, result.LoanID)
	helper.AssertLastEventType(t, ctx, es, core.LendingBookFailedEventType)
}

func Test_CommandHandler_Handle_Error_UnknownBook(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	handler := lendbook.NewCommandHandler(es)

	// act
	_, err := handler.Handle(ctx, lendbook.BuildCommand(4711, "Alice", "2024-01-01", time.Now()))

	// assert
	assert.ErrorIs(t, err, lendbook.ErrBookDoesNotExist)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_CommandHandler_Handle_Error_LedgerCapacityReached(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es,
		core.BuildBookAdded(1000, "111111111-1", "Dune", time.Now()),
		core.BuildBookAdded(1001, "222222222-2", "Emma", time.Now()),
	)
	handler := lendbook.NewCommandHandler(es, lendbook.WithCapacity(1))
	_, err := handler.Handle(ctx, lendbook.BuildCommand(1000, "Alice", "2024-01-01", time.Now()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, lendbook.BuildCommand(1001, "Bob", "2024-01-02", time.Now()))

	// assert
	assert.ErrorIs(t, err, lendbook.ErrLedgerCapacityReached)
}

func Test_CommandHandler_Handle_Error_MalformedDate(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es, core.BuildBookAdded(1000, "123456789-0", "Dune", time.Now()))
	handler := lendbook.NewCommandHandler(es)

	// act
	_, err := handler.Handle(ctx, lendbook.BuildCommand(1000, "Alice", "01-01-2024", time.Now()))

	// assert
	assert.ErrorIs(t, err, lendbook.ErrStartDateMalformed)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func Test_CommandHandler_Handle_ConcurrentLoansOfOneBook(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es, core.BuildBookAdded(1000, "123456789-0", "Dune", time.Now()))
	handler := lendbook.NewCommandHandler(es, lendbook.WithRetryOptions(
		shell.WithMaxAttempts(10),
		shell.WithBaseDelay(time.Millisecond),
	))

	const lenders = 5
	var wg sync.WaitGroup
	errs := make([]error, lenders)

	// act
	for i := range lenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = handler.Handle(ctx, lendbook.BuildCommand(1000, "Lender", "2024-01-01", time.Now()))
		}()
	}
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, lendbook.ErrBookIsAlreadyLoaned)
	}
	assert.Equal(t, 1, succeeded, "exactly one loan may be opened")

	loans, _, err := es.Query(context.Background(), eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookLentEventType).
		Finalize())
	require.NoError(t, err)
	assert.Len(t, loans, 1)
}
