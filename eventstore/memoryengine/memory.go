package memoryengine

import (
	"context"
	"sync"
	"time"

	"github.com/AntonStoeckl/ltu-library/eventstore"
)

const (
	logMsgQueryCompleted      = "query completed"
	logMsgQueryFailed         = "query failed"
	logMsgEventsAppended      = "events appended"
	logMsgAppendFailed        = "append failed"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logAttrError              = "error"
	logAttrEventType          = "event_type"
	logAttrEventCount         = "event_count"
	logAttrDurationMS         = "duration_ms"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
	logAttrMaxSequence        = "max_sequence_number"
)

// storedEvent is a StorableEvent together with its position in the log.
type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
}

// EventStore is an in-memory append-only event log.
// It is safe for concurrent use. The zero value is not usable, construct it with NewEventStore.
type EventStore struct {
	mu               sync.RWMutex
	events           []storedEvent
	now              func() time.Time
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
	metricsCollector eventstore.MetricsCollector
	tracingCollector eventstore.TracingCollector
}

// NewEventStore creates an empty EventStore with optional configuration.
func NewEventStore(options ...Option) (*EventStore, error) {
	es := &EventStore{
		events: make([]storedEvent, 0),
		now:    time.Now,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns all events matching the filter in sequence order,
// together with the highest sequence number among them (0 if nothing matched).
func (es *EventStore) Query(
	ctx context.Context,
	filter eventstore.Filter,
) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error) {

	ctx, span := es.startQuerySpan(ctx)
	start := es.now()

	if err := ctx.Err(); err != nil {
		es.logError(ctx, logMsgQueryFailed, err)
		es.recordErrorMetrics(ctx, operationQuery, errorTypeContext)
		es.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorTypeContext})

		return nil, 0, err
	}

	es.mu.RLock()
	events, maxSequenceNumber := es.collect(filter)
	es.mu.RUnlock()

	duration := es.now().Sub(start)

	es.logDebug(ctx, logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrMaxSequence, maxSequenceNumber,
		logAttrDurationMS, toMilliseconds(duration),
	)
	es.recordDurationMetrics(ctx, metricQueryDuration, duration, operationQuery, statusSuccess)
	es.recordValueMetrics(ctx, metricEventsQueried, float64(len(events)), operationQuery, statusSuccess)
	es.finishQuerySpanSuccess(span, len(events), maxSequenceNumber, duration)

	return events, maxSequenceNumber, nil
}

// Append stores the events if no event matching the filter was appended since the caller's Query.
//
// The filter is evaluated again under the write lock. If the highest matching sequence number differs
// from expectedMaxSequenceNumber nothing is stored and eventstore.ErrConcurrencyConflict is returned.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	storableEvent eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	allEvents := append(eventstore.StorableEvents{storableEvent}, additionalEvents...)

	ctx, span := es.startAppendSpan(ctx, allEvents, expectedMaxSequenceNumber)
	start := es.now()

	if err := ctx.Err(); err != nil {
		es.logError(ctx, logMsgAppendFailed, err)
		es.recordErrorMetrics(ctx, operationAppend, errorTypeContext)
		es.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorTypeContext})

		return err
	}

	es.mu.Lock()

	_, actualMaxSequenceNumber := es.collect(filter)
	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		es.mu.Unlock()

		es.logInfo(ctx, logMsgConcurrencyConflict,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrActualSequence, actualMaxSequenceNumber,
			logAttrEventType, storableEvent.EventType,
		)
		es.recordConcurrencyConflictMetrics(ctx)
		es.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorTypeConcurrencyConflict})

		return eventstore.ErrConcurrencyConflict
	}

	next := es.lastSequenceNumber()
	for _, event := range allEvents {
		next++
		es.events = append(es.events, storedEvent{sequenceNumber: next, event: event})
	}

	es.mu.Unlock()

	duration := es.now().Sub(start)

	es.logDebug(ctx, logMsgEventsAppended,
		logAttrEventType, storableEvent.EventType,
		logAttrEventCount, len(allEvents),
		logAttrMaxSequence, next,
		logAttrDurationMS, toMilliseconds(duration),
	)
	es.recordDurationMetrics(ctx, metricAppendDuration, duration, operationAppend, statusSuccess)
	es.recordValueMetrics(ctx, metricEventsAppended, float64(len(allEvents)), operationAppend, statusSuccess)
	es.finishAppendSpanSuccess(span, len(allEvents), duration)

	return nil
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

// collect must be called with at least the read lock held.
func (es *EventStore) collect(filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint) {
	events := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if matches(filter, stored.event) {
			events = append(events, stored.event)
			maxSequenceNumber = stored.sequenceNumber
		}
	}

	return events, maxSequenceNumber
}

func (es *EventStore) lastSequenceNumber() eventstore.MaxSequenceNumberUint {
	if len(es.events) == 0 {
		return 0
	}

	return es.events[len(es.events)-1].sequenceNumber
}
