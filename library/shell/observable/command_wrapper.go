package observable

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/ltu-library/library/shell"
)

// ErrNilCoreHandler is returned when a wrapper is created without a handler to wrap.
var ErrNilCoreHandler = errors.New("core handler must not be nil")

// CommandWrapper instruments any core command handler with metrics, tracing and logging.
type CommandWrapper[C shell.Command, R shell.CommandResult] struct {
	coreHandler      shell.CoreCommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewCommandWrapper creates a new observable wrapper around the core command handler.
func NewCommandWrapper[C shell.Command, R shell.CommandResult](
	coreHandler shell.CoreCommandHandler[C, R],
	opts ...CommandOption[C, R],
) (*CommandWrapper[C, R], error) {

	if coreHandler == nil {
		return nil, ErrNilCoreHandler
	}

	// The zero value of every command knows its type.
	var zeroCommand C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// Handle delegates to the core handler and records the outcome.
// The result and error of the core handler are returned unchanged.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	commandStart := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogDebug(ctx, w.logger, w.contextualLogger, shell.LogMsgCommandStarted, shell.LogAttrCommandType, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)
	metadata := result.ExecutionMetadata()

	w.recordRetryMetrics(ctx, metadata)

	if err != nil {
		w.recordCommandError(ctx, err, time.Since(commandStart), span)
		return result, err
	}

	w.recordCommandSuccess(ctx, shell.StatusSuccess, time.Since(commandStart), span)

	return result, nil
}

// CommandOption defines a functional option for configuring CommandWrapper.
type CommandOption[C shell.Command, R shell.CommandResult] func(*CommandWrapper[C, R]) error

// WithCommandMetrics sets the metrics collector for the CommandWrapper.
func WithCommandMetrics[C shell.Command, R shell.CommandResult](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithCommandTracing sets the tracing collector for the CommandWrapper.
func WithCommandTracing[C shell.Command, R shell.CommandResult](collector shell.TracingCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.tracingCollector = collector
		return nil
	}
}

// WithCommandContextualLogging sets the contextual logger for the CommandWrapper.
func WithCommandContextualLogging[C shell.Command, R shell.CommandResult](logger shell.ContextualLogger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithCommandLogging sets the basic logger for the CommandWrapper.
func WithCommandLogging[C shell.Command, R shell.CommandResult](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.logger = logger
		return nil
	}
}

/*** Observability helper methods ***/

func (w *CommandWrapper[C, R]) recordCommandSuccess(
	ctx context.Context,
	businessOutcome string,
	duration time.Duration,
	span shell.SpanContext,
) {

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, businessOutcome, duration)
	shell.FinishSpan(w.tracingCollector, span, businessOutcome, duration, nil)
	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgCommandCompleted,
		shell.LogAttrCommandType, w.commandType,
		shell.LogAttrBusinessOutcome, businessOutcome,
		shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
	)
}

func (w *CommandWrapper[C, R]) recordCommandError(
	ctx context.Context,
	err error,
	duration time.Duration,
	span shell.SpanContext,
) {

	if kind, isBusinessError := shell.BusinessErrorKind(err); isBusinessError {
		w.recordCommandRejected(ctx, err, kind, duration, span)
		return
	}

	status := shell.StatusError

	switch {
	case shell.IsCancellationError(err):
		status = shell.StatusCanceled
	case shell.IsTimeoutError(err):
		status = shell.StatusTimeout
	case shell.IsConcurrencyConflictError(err):
		status = shell.StatusConcurrencyConflict
	}

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
	shell.FinishSpan(w.tracingCollector, span, status, duration, err)
	shell.LogError(ctx, w.logger, w.contextualLogger, shell.LogMsgCommandFailed,
		shell.LogAttrCommandType, w.commandType,
		shell.LogAttrStatus, status,
		shell.LogAttrError, err.Error(),
	)
}

func (w *CommandWrapper[C, R]) recordCommandRejected(
	ctx context.Context,
	err error,
	kind string,
	duration time.Duration,
	span shell.SpanContext,
) {

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, shell.StatusError, duration)
	shell.RecordCommandBusinessError(ctx, w.metricsCollector, w.commandType, kind)
	shell.FinishSpan(w.tracingCollector, span, shell.StatusError, duration, err)
	shell.LogInfo(ctx, w.logger, w.contextualLogger, shell.LogMsgCommandRejected,
		shell.LogAttrCommandType, w.commandType,
		shell.LogAttrErrorKind, kind,
		shell.LogAttrError, err.Error(),
		shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
	)
}

func (w *CommandWrapper[C, R]) recordRetryMetrics(ctx context.Context, metadata shell.HandlerResult) {
	if w.metricsCollector == nil {
		return
	}

	contextualCollector, isContextual := w.metricsCollector.(shell.ContextualMetricsCollector)
	commandLabels := map[string]string{shell.LogAttrCommandType: w.commandType}

	if metadata.RetryAttempts > 1 {
		retryLabels := shell.BuildRetryLabels(w.commandType, metadata.RetryAttempts-1, metadata.LastErrorType)

		if isContextual {
			contextualCollector.IncrementCounterContext(ctx, shell.CommandHandlerRetriesMetric, retryLabels)
			contextualCollector.RecordDurationContext(ctx, shell.CommandHandlerRetryDelayMetric, metadata.TotalRetryDelay, commandLabels)
		} else {
			w.metricsCollector.IncrementCounter(shell.CommandHandlerRetriesMetric, retryLabels)
			w.metricsCollector.RecordDuration(shell.CommandHandlerRetryDelayMetric, metadata.TotalRetryDelay, commandLabels)
		}
	}

	if metadata.RetriesExhausted {
		if isContextual {
			contextualCollector.IncrementCounterContext(ctx, shell.CommandHandlerMaxRetriesReachedMetric, commandLabels)
		} else {
			w.metricsCollector.IncrementCounter(shell.CommandHandlerMaxRetriesReachedMetric, commandLabels)
		}
	}
}
