// Package observable wraps command and query handlers with metrics, tracing and logging
// while the wrapped handlers keep only the business workflow.
//
// The wrappers are applied at wiring time, not hidden inside the feature packages:
//
//	coreHandler := lendbook.NewCommandHandler(eventStore)
//
//	handler, err := observable.NewCommandWrapper[lendbook.Command, lendbook.Result](
//		coreHandler,
//		observable.WithCommandMetrics[lendbook.Command, lendbook.Result](metricsCollector),
//		observable.WithCommandTracing[lendbook.Command, lendbook.Result](tracingCollector),
//		observable.WithCommandContextualLogging[lendbook.Command, lendbook.Result](contextualLogger),
//	)
//
//	result, err := handler.Handle(ctx, command)
//
// Every observability concern is optional. A wrapper without options only delegates.
//
// Business rule violations (errors wrapping core.ErrValidation, core.ErrConflict, core.ErrNotFound
// or core.ErrInput) are expected outcomes of an interactive session. They are logged at info level
// as a rejection and counted by kind, while infrastructure failures are logged at error level.
package observable
