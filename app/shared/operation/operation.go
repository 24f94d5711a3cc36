package operation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/quiz-host/app/shared/apperr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability"
	"github.com/Black-And-White-Club/quiz-host/app/shared/observability/attr"
	"github.com/Black-And-White-Club/quiz-host/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Result is the result shape every service operation produces.
type Result[S any] = results.OperationResult[S, error]

// Success wraps a success payload.
func Success[S any](s S) Result[S] { return results.SuccessResult[S, error](s) }

// Failure wraps a domain failure. The surrounding transaction is rolled back.
func Failure[S any](err error) Result[S] { return results.FailureResult[S, error](err) }

// TxFunc is the body of a transactional operation.
type TxFunc[S any] func(ctx context.Context, db bun.IDB) (Result[S], error)

// Runner carries the shared collaborators of a service.
type Runner struct {
	Service string
	Logger  *slog.Logger
	Metrics observability.Metrics
	Tracer  trace.Tracer
	DB      *bun.DB
}

// NewRunner fills nil collaborators with no-op defaults.
func NewRunner(service string, db *bun.DB, logger *slog.Logger, metrics observability.Metrics, tracer trace.Tracer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Runner{Service: service, Logger: logger, Metrics: metrics, Tracer: tracer, DB: db}
}

var errRollback = errors.New("operation failed, rolling back")

// Run executes fn in one transaction under telemetry and unwraps the result.
// A domain failure is returned as the error and leaves no writes behind.
func Run[S any](r *Runner, ctx context.Context, operationName, identifier string, fn TxFunc[S]) (S, error) {
	var zero S
	result, err := withTelemetry(r, ctx, operationName, identifier, func(ctx context.Context) (Result[S], error) {
		return runInTx(r, ctx, fn)
	})
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if !result.IsSuccess() {
		return zero, fmt.Errorf("%s: empty result", operationName)
	}
	return *result.Success, nil
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any](
	r *Runner,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (Result[S], error),
) (result Result[S], err error) {
	var span trace.Span
	if r.Tracer != nil {
		ctx, span = r.Tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	r.Metrics.RecordOperationAttempt(ctx, operationName, r.Service)

	startTime := time.Now()
	defer func() {
		r.Metrics.RecordOperationDuration(ctx, operationName, r.Service, time.Since(startTime))
	}()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, rec)
			r.Logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
			span.RecordError(err)
			result = Result[S]{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		r.Logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		r.Logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(*result.Failure),
		)
		r.Metrics.RecordOperationFailure(ctx, operationName, r.Service)
		return result, nil
	}

	r.Logger.InfoContext(ctx, "Operation completed successfully",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operationName),
		attr.String("identifier", identifier),
	)
	r.Metrics.RecordOperationSuccess(ctx, operationName, r.Service)
	return result, nil
}

// runInTx ensures the operation runs within a transaction. Without a DB the
// function runs directly, which is how unit tests drive services over fakes.
func runInTx[S any](r *Runner, ctx context.Context, fn TxFunc[S]) (Result[S], error) {
	if r.DB == nil {
		return fn(ctx, nil)
	}

	var result Result[S]
	err := r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr != nil {
			return txErr
		}
		if result.IsFailure() {
			return errRollback
		}
		return nil
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}
	return result, err
}

// FromError routes err to the right channel: classified domain errors become a
// Failure (and roll the transaction back), anything else is a gateway failure.
func FromError[S any](op string, err error) (Result[S], error) {
	if apperr.KindOf(err) != apperr.KindPersistence {
		return Failure[S](err), nil
	}
	return Result[S]{}, apperr.Persistence(op, err)
}
