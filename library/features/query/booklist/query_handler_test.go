package booklist_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/features/query/booklist"
	"github.com/AntonStoeckl/ltu-library/testutil/helper"
)

func Test_QueryHandler_Handle_ReturnsCatalog(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es,
		core.BuildBookAdded(2000, "333333333-3", "Solaris", time.Now()),
		core.BuildBookAdded(1000, "222222222-2", "Dune", time.Now()),
		core.BuildBookLent(uuid.New(), 1000, "Alice", core.MustParseDate("2024-01-01"), time.Now()),
	)
	handler := booklist.NewQueryHandler(es)

	// act
	result, err := handler.Handle(ctx, booklist.BuildQuery())

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "Dune", result.Books[0].Title)
	assert.Equal(t, booklist.StatusLoaned, result.Books[0].Status)
	assert.Equal(t, "Solaris", result.Books[1].Title)
	assert.Equal(t, booklist.StatusAvailable, result.Books[1].Status)
	assert.Equal(t, uint(3), result.GetSequenceNumber())
}

func Test_QueryHandler_Handle_IsIdempotent(t *testing.T) {
	// arrange
	ctx, es := helper.SetupTestEnvironment(t)
	helper.GivenEventsAppended(t, ctx, es,
		core.BuildBookAdded(1000, "222222222-2", "Dune", time.Now()),
	)
	handler := booklist.NewQueryHandler(es)

	// act
	first, err := handler.Handle(ctx, booklist.BuildQuery())
	require.NoError(t, err)
	second, err := handler.Handle(ctx, booklist.BuildQuery())
	require.NoError(t, err)

	// assert
	assert.Equal(t, first, second)
}
