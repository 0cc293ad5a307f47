package returnbook

import (
	"context"

	"github.com/AntonStoeckl/ltu-library/library/core"
	"github.com/AntonStoeckl/ltu-library/library/shell"
)

// Receipt is returned by the CommandHandler. The loan fields are only set when the loan was closed.
type Receipt struct {
	shell.HandlerResult
	LoanID       core.LoanIDString
	Lender       string
	Title        string
	ISBN         core.ISBNString
	StartDate    core.DateString
	ReturnDate   core.DateString
	DurationDays int
	Cost         int
}

// CommandHandler orchestrates the complete command processing workflow with pure business logic and retry.
// It handles the core event sourcing workflow: Query -> Unmarshal -> Decide -> Append.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	eventStore   shell.EventStore
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

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the complete command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Receipt, error) {
	var receipt Receipt

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		receipt, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Receipt{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	receipt.HandlerResult = shell.NewSuccessResult(retryMetrics)

	return receipt, nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Receipt, error) {
	filter := BuildEventFilter(command.BookID)

	// Query phase
	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return Receipt{}, err
	}

	// Unmarshal phase
	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Receipt{}, err
	}

	// Business logic phase
	decision := Decide(history, command)

	// Append phase
	storableEvent, err := shell.StorableEventFrom(decision.Event, shell.NewCommandEventMetadata())
	if err != nil {
		return Receipt{}, err
	}

	if err = h.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return Receipt{}, err
	}

	if err = decision.HasError(); err != nil {
		return Receipt{}, err
	}

	returned, _ := decision.Event.(core.BookReturned)
	s := project(history, command.BookID)

	return Receipt{
		LoanID:       returned.LoanID,
		Lender:       s.openLoan.lender,
		Title:        s.title,
		ISBN:         s.isbn,
		StartDate:    s.openLoan.startDate,
		ReturnDate:   returned.ReturnDate,
		DurationDays: returned.DurationDays,
		Cost:         returned.Cost,
	}, nil
}
