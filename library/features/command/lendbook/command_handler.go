package lendbook

import (
	"context"

	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/shell"
)

// Result is returned by the CommandHandler. The loan fields are only set when the loan was opened.
type Result struct {
	shell.HandlerResult
	LoanID    core.LoanIDString
	Title     string
	Lender    string
	StartDate core.DateString
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core event sourcing workflow: Query -> Unmarshal -> Decide -> Append.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	eventStore   shell.EventStore
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

// WithCapacity sets the maximum number of loans in the ledger. Non-positive values are ignored.
func WithCapacity(capacity int) Option {
	return func(h *CommandHandler) {
		if capacity > 0 {
			h.capacity = capacity
		}
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
		capacity:   DefaultCapacity,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	result.HandlerResult = shell.NewSuccessResult(retryMetrics)

	return result, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	filter := BuildEventFilter(command.BookID)

	// Query phase
	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return Result{}, err
	}

	// Unmarshal phase
	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Result{}, err
	}

	// Business logic phase
	decision := Decide(history, command, h.capacity)

	// Append phase
	storableEvent, err := shell.StorableEventFrom(decision.Event, shell.NewCommandEventMetadata())
	if err != nil {
		return Result{}, err
	}

	if err = h.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return Result{}, err
	}

	if err = decision.HasError(); err != nil {
		return Result{}, err
	}

	lent, _ := decision.Event.(core.BookLent)

	return Result{
		LoanID:    lent.LoanID,
		Title:     project(history, command.BookID).title,
		Lender:    lent.Lender,
		StartDate: lent.StartDate,
	}, nil
}
