package observable_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/ltu-library/library/shell"
	"github.com/AntonStoeckl/ltu-library/library/shell/observable"
	"github.com/AntonStoeckl/ltu-library/testutil/testdoubles"
)

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// arrange
	handler := &mockQueryHandler{result: mockQueryResult{sequenceNumber: 7}}
	metricsCollector := testdoubles.NewMetricsCollectorSpy()
	tracingCollector := testdoubles.NewTracingCollectorSpy()
	contextualLogger := testdoubles.NewContextualLoggerSpy()

	wrapper, err := observable.NewQueryWrapper[mockQuery, mockQueryResult](
		handler,
		observable.WithQueryMetrics[mockQuery, mockQueryResult](metricsCollector),
		observable.WithQueryTracing[mockQuery, mockQueryResult](tracingCollector),
		observable.WithQueryContextualLogging[mockQuery, mockQueryResult](contextualLogger),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(t.Context(), mockQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, uint(7), result.GetSequenceNumber())
	assert.True(t, metricsCollector.HasDurationRecord(shell.QueryHandlerDurationMetric,
		map[string]string{"query_type": "TestQuery", "status": "success"}))
	assert.True(t, metricsCollector.HasCounterRecord(shell.QueryHandlerCallsMetric,
		map[string]string{"query_type": "TestQuery", "status": "success"}))
	assert.True(t, tracingCollector.HasFinishedSpan(shell.SpanNameQueryHandle, "success"))
	assert.True(t, contextualLogger.HasInfoLog(shell.LogMsgQueryCompleted))
}

func Test_QueryWrapper_Handle_Errors(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedStatus string
		expectedMetric string
	}{
		{name: "canceled", err: context.Canceled, expectedStatus: "canceled", expectedMetric: shell.QueryHandlerCanceledMetric},
		{name: "timeout", err: context.DeadlineExceeded, expectedStatus: "timeout", expectedMetric: shell.QueryHandlerTimeoutMetric},
		{name: "other", err: errors.New("unknown event type"), expectedStatus: "error", expectedMetric: shell.QueryHandlerCallsMetric},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			handler := &mockQueryHandler{err: tc.err}
			metricsCollector := testdoubles.NewMetricsCollectorSpy()
			contextualLogger := testdoubles.NewContextualLoggerSpy()

			wrapper, err := observable.NewQueryWrapper[mockQuery, mockQueryResult](
				handler,
				observable.WithQueryMetrics[mockQuery, mockQueryResult](metricsCollector),
				observable.WithQueryContextualLogging[mockQuery, mockQueryResult](contextualLogger),
			)
			require.NoError(t, err)

			// act
			_, err = wrapper.Handle(t.Context(), mockQuery{})

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, metricsCollector.HasCounterRecord(tc.expectedMetric,
				map[string]string{"query_type": "TestQuery", "status": tc.expectedStatus}))
			assert.True(t, contextualLogger.HasErrorLog(shell.LogMsgQueryFailed))
		})
	}
}

func Test_QueryWrapper_NewQueryWrapper_NilHandler(t *testing.T) {
	_, err := observable.NewQueryWrapper[mockQuery, mockQueryResult](nil)

	assert.ErrorIs(t, err, observable.ErrNilCoreHandler)
}

type mockQuery struct{}

func (mockQuery) QueryType() string { return "TestQuery" }

type mockQueryResult struct {
	sequenceNumber uint
}

func (r mockQueryResult) GetSequenceNumber() uint { return r.sequenceNumber }

type mockQueryHandler struct {
	result mockQueryResult
	err    error
}

func (h *mockQueryHandler) Handle(_ context.Context, _ mockQuery) (mockQueryResult, error) {
	return h.result, h.err
}
