package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/ltu-library/library/core"
)

func Test_DecisionResult(t *testing.T) {
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		result := core.SuccessDecision(core.BuildBookRemoved(1000, now))

		assert.NotNil(t, result.Event)
		assert.NoError(t, result.HasError())
	})

	t.Run("error", func(t *testing.T) {
		event := core.BuildRemovingBookFailed("1000", "book does not exist", now)
		err := core.BusinessError(core.ErrNotFound, event.EventType(), event.FailureInfo)

		result := core.ErrorDecision(event, err)

		assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
		assert.EqualError(t, result.HasError(), "not found error: RemovingBookFailed: book does not exist")
		assert.True(t, result.Event.IsErrorEvent())
		assert.False(t, errors.Is(result.HasError(), core.ErrConflict))
	})
}
