package shell

import (
	"context"

	"github.com/AntonStoeckl/ltu-library/eventstore"
)

// QueriesEvents is the part of the event store that query handlers need.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is the part of the event store that command handlers need.
type EventStore interface {
	QueriesEvents
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		storableEvent eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CommandResult is returned by command handlers. Besides the business payload of a feature
// (an assigned book id, a loan id, a receipt) it exposes the execution metadata for observability.
type CommandResult interface {
	ExecutionMetadata() HandlerResult
}

// CoreCommandHandler defines the contract for components that process commands with pure business logic.
// Handlers orchestrate the command workflow: query events, unmarshal, decide, append.
// Implementations don't care about observability, they are wrapped by observable.CommandWrapper.
type CoreCommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all query results (projections).
// GetSequenceNumber returns the highest event sequence number included in the projection.
type QueryResult interface {
	GetSequenceNumber() uint
}

// CoreQueryHandler defines the contract for components that process queries with pure business logic.
// Handlers orchestrate the query workflow: query events, unmarshal, project.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
