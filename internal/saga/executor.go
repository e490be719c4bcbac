package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/oab26/medusa-colabship/internal/apperror"
)

// Error is returned when a saga failed and one or more compensations failed
// too. Cause is the step failure that aborted the run and is what unwrapping
// (and apperror.KindOf) sees; Rollback aggregates the compensation failures.
type Error struct {
	Cause    error
	Rollback error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v (rollback incomplete: %v)", e.Cause, e.Rollback)
}

func (e *Error) Unwrap() error { return e.Cause }

const (
	defaultStepTimeout = 15 * time.Second
	defaultUndoRetries = 3
)

// Executor runs steps sequentially and compensates completed ones in strict
// reverse order when a step fails. Compensation failures are retried with
// exponential backoff, then logged and attached to the returned error; they
// never replace the original step failure.
type Executor struct {
	log         logrus.FieldLogger
	stepTimeout time.Duration
	undoRetries uint64
}

// Option configures an Executor.
type Option func(*Executor)

// WithStepTimeout bounds each step's forward action. Expiry is treated as a
// step failure and triggers rollback.
func WithStepTimeout(d time.Duration) Option {
	return func(e *Executor) { e.stepTimeout = d }
}

// WithCompensationRetries sets how many times a failing compensation is
// retried before being reported.
func WithCompensationRetries(n uint64) Option {
	return func(e *Executor) { e.undoRetries = n }
}

// NewExecutor creates an Executor logging through log.
func NewExecutor(log logrus.FieldLogger, opts ...Option) *Executor {
	e := &Executor{
		log:         log,
		stepTimeout: defaultStepTimeout,
		undoRetries: defaultUndoRetries,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes steps in order. On the first failure it compensates every
// attempted step in reverse order, including the failed step itself (whose
// token may cover partially created state), and returns the step's error.
func (e *Executor) Run(ctx context.Context, name string, steps ...Step) error {
	runID := uuid.NewString()
	log := e.log.WithFields(logrus.Fields{"saga": name, "run_id": runID})

	var attempted []Step
	for _, step := range steps {
		attempted = append(attempted, step)
		log.WithField("step", step.Name()).Info("executing saga step")

		err := e.runStep(ctx, step)
		if err == nil {
			log.WithField("step", step.Name()).Info("saga step completed")
			continue
		}

		log.WithField("step", step.Name()).WithError(err).Error("saga step failed, rolling back")
		if rbErr := e.rollback(ctx, log, attempted); rbErr != nil {
			return &Error{Cause: err, Rollback: rbErr}
		}
		return err
	}
	log.Info("saga completed")
	return nil
}

func (e *Executor) runStep(ctx context.Context, step Step) error {
	if e.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.stepTimeout)
		defer cancel()
	}
	err := step.Run(ctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return apperror.Wrap(apperror.Unavailable, step.Name()+" timed out", err)
	}
	return err
}

// rollback compensates attempted steps LIFO. The caller's context may already
// be dead, so compensation runs detached from its cancellation with the same
// per-step timeout.
func (e *Executor) rollback(ctx context.Context, log logrus.FieldLogger, attempted []Step) error {
	var result *multierror.Error
	for i := len(attempted) - 1; i >= 0; i-- {
		step := attempted[i]
		log.WithField("step", step.Name()).Info("compensating saga step")

		err := e.compensateStep(context.WithoutCancel(ctx), step)
		if err != nil {
			log.WithField("step", step.Name()).WithError(err).Error("compensation failed")
			result = multierror.Append(result, fmt.Errorf("compensate %s: %w", step.Name(), err))
		}
	}
	return result.ErrorOrNil()
}

func (e *Executor) compensateStep(ctx context.Context, step Step) error {
	op := func() error {
		stepCtx := ctx
		if e.stepTimeout > 0 {
			var cancel context.CancelFunc
			stepCtx, cancel = context.WithTimeout(ctx, e.stepTimeout)
			defer cancel()
		}
		return step.Compensate(stepCtx)
	}
	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), e.undoRetries)
	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}
