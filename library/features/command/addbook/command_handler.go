package addbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/shell"
)

// ErrBookIDRangeExhausted is returned when every id of the configured range is taken.
var ErrBookIDRangeExhausted = errors.New("no free book id left in the configured range")

// Result is returned by the CommandHandler. BookID is the id assigned to the new book,
// it is only set when the book was added.
type Result struct {
	shell.HandlerResult
	BookID core.BookIDInt
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core event sourcing workflow: Query -> Unmarshal -> Allocate ID -> Decide -> Append.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	eventStore   shell.EventStore
	bookIDs      shell.BookIDGenerator
	capacity     int
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithCapacity sets the maximum number of books in the catalog. Non-positive values are ignored.
func WithCapacity(capacity int) Option {
	return func(h *CommandHandler) {
		if capacity > 0 {
			h.capacity = capacity
		}
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, bookIDs shell.BookIDGenerator, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
		bookIDs:    bookIDs,
		capacity:   DefaultCapacity,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
// A fresh id is drawn on every attempt, since a concurrent add may have taken the previous one.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var bookID core.BookIDInt

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		bookID, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	return Result{HandlerResult: shell.NewSuccessResult(retryMetrics), BookID: bookID}, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.BookIDInt, error) {
	filter := BuildEventFilter()

	// Query phase
	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return 0, err
	}

	// Unmarshal phase
	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return 0, err
	}

	// ID allocation phase, only needed if the book can be added at all
	s := project(history)
	if s.bookCount() < h.capacity {
		command.BookID, err = h.allocateBookID(s)
		if err != nil {
			return 0, err
		}
	}

	// Business logic phase
	result := Decide(history, command, h.capacity)

	// Append phase
	storableEvent, err := shell.StorableEventFrom(result.Event, shell.NewCommandEventMetadata())
	if err != nil {
		return 0, err
	}

	if err = h.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return 0, err
	}

	if err = result.HasError(); err != nil {
		return 0, err
	}

	return command.BookID, nil
}

// allocateBookID draws candidates until one is free. Generators yield every id of their range
// eventually, so the loop ends as long as the range is not full.
func (h CommandHandler) allocateBookID(s state) (core.BookIDInt, error) {
	if s.bookCount() >= h.bookIDs.MaxBookID()-h.bookIDs.MinBookID() {
		return 0, ErrBookIDRangeExhausted
	}

	for {
		candidate := h.bookIDs.NextBookID()
		if !s.bookIDTaken(candidate) {
			return candidate, nil
		}
	}
}
