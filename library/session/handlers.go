package session

import (
	"github.com/AntonStoeckl/ltu-library/library/features/command/addbook"
	"github.com/AntonStoeckl/ltu-library/library/features/command/lendbook"
	"github.com/AntonStoeckl/ltu-library/library/features/command/removebook"
	"github.com/AntonStoeckl/ltu-library/library/features/command/returnbook"
	"github.com/AntonStoeckl/ltu-library/library/features/query/booklist"
	"github.com/AntonStoeckl/ltu-library/library/features/query/loansummary"
	"github.com/AntonStoeckl/ltu-library/library/shell"
	"github.com/AntonStoeckl/ltu-library/library/shell/observable"
)

// Handlers are the use cases a Session dispatches to.
type Handlers struct {
	AddBook     shell.CoreCommandHandler[addbook.Command, addbook.Result]
	RemoveBook  shell.CoreCommandHandler[removebook.Command, removebook.Result]
	LendBook    shell.CoreCommandHandler[lendbook.Command, lendbook.Result]
	ReturnBook  shell.CoreCommandHandler[returnbook.Command, returnbook.Receipt]
	BookList    shell.CoreQueryHandler[booklist.Query, booklist.BookList]
	LoanSummary shell.CoreQueryHandler[loansummary.Query, loansummary.LoanSummary]
}

// Observability holds the collectors the handlers are instrumented with. Nil members are skipped.
type Observability struct {
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
	ContextualLogger shell.ContextualLogger
	Logger           shell.Logger
}

// NewHandlers wires the core handlers of all use cases to eventStore and wraps each of them
// with an observable wrapper. capacity applies to the catalog and the loan ledger.
func NewHandlers(
	eventStore shell.EventStore,
	bookIDs shell.BookIDGenerator,
	capacity int,
	obs Observability,
) (Handlers, error) {

	addBook, err := observable.NewCommandWrapper[addbook.Command, addbook.Result](
		addbook.NewCommandHandler(eventStore, bookIDs, addbook.WithCapacity(capacity)),
		commandOptions[addbook.Command, addbook.Result](obs)...,
	)
	if err != nil {
		return Handlers{}, err
	}

	removeBook, err := observable.NewCommandWrapper[removebook.Command, removebook.Result](
		removebook.NewCommandHandler(eventStore),
		commandOptions[removebook.Command, removebook.Result](obs)...,
	)
	if err != nil {
		return Handlers{}, err
	}

	lendBook, err := observable.NewCommandWrapper[lendbook.Command, lendbook.Result](
		lendbook.NewCommandHandler(eventStore, lendbook.WithCapacity(capacity)),
		commandOptions[lendbook.Command, lendbook.Result](obs)...,
	)
	if err != nil {
		return Handlers{}, err
	}

	returnBook, err := observable.NewCommandWrapper[returnbook.Command, returnbook.Receipt](
		returnbook.NewCommandHandler(eventStore),
		commandOptions[returnbook.Command, returnbook.Receipt](obs)...,
	)
	if err != nil {
		return Handlers{}, err
	}

	bookList, err := observable.NewQueryWrapper[booklist.Query, booklist.BookList](
		booklist.NewQueryHandler(eventStore),
		queryOptions[booklist.Query, booklist.BookList](obs)...,
	)
	if err != nil {
		return Handlers{}, err
	}

	loanSummary, err := observable.NewQueryWrapper[loansummary.Query, loansummary.LoanSummary](
		loansummary.NewQueryHandler(eventStore),
		queryOptions[loansummary.Query, loansummary.LoanSummary](obs)...,
	)
	if err != nil {
		return Handlers{}, err
	}

	return Handlers{
		AddBook:     addBook,
		RemoveBook:  removeBook,
		LendBook:    lendBook,
		ReturnBook:  returnBook,
		BookList:    bookList,
		LoanSummary: loanSummary,
	}, nil
}

func commandOptions[C shell.Command, R shell.CommandResult](obs Observability) []observable.CommandOption[C, R] {
	var opts []observable.CommandOption[C, R]

	if obs.Metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C, R](obs.Metrics))
	}
	if obs.Tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C, R](obs.Tracing))
	}
	if obs.ContextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C, R](obs.ContextualLogger))
	}
	if obs.Logger != nil {
		opts = append(opts, observable.WithCommandLogging[C, R](obs.Logger))
	}

	return opts
}

func queryOptions[Q shell.Query, R shell.QueryResult](obs Observability) []observable.QueryOption[Q, R] {
	var opts []observable.QueryOption[Q, R]

	if obs.Metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](obs.Metrics))
	}
	if obs.Tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](obs.Tracing))
	}
	if obs.ContextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](obs.ContextualLogger))
	}
	if obs.Logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](obs.Logger))
	}

	return opts
}
