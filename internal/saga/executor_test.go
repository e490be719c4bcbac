package saga

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oab26/medusa-colabship/internal/apperror"
)

func testExecutor(opts ...Option) *Executor {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewExecutor(log, opts...)
}

// recorder tracks the order of run and undo calls across steps.
type recorder struct {
	events []string
}

func (r *recorder) step(name string, runErr, undoErr error) Step {
	return New(name,
		func(ctx context.Context) (string, error) {
			r.events = append(r.events, "run:"+name)
			return name + "-token", runErr
		},
		func(ctx context.Context, token string) error {
			r.events = append(r.events, "undo:"+name)
			return undoErr
		},
	)
}

func TestExecutorRunsStepsInOrder(t *testing.T) {
	rec := &recorder{}
	err := testExecutor().Run(context.Background(), "t",
		rec.step("a", nil, nil),
		rec.step("b", nil, nil),
		rec.step("c", nil, nil),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"run:a", "run:b", "run:c"}, rec.events)
}

func TestExecutorCompensatesInReverseOrder(t *testing.T) {
	rec := &recorder{}
	cause := errors.New("step c failed")
	err := testExecutor().Run(context.Background(), "t",
		rec.step("a", nil, nil),
		rec.step("b", nil, nil),
		rec.step("c", cause, nil),
	)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, []string{
		"run:a", "run:b", "run:c",
		"undo:c", "undo:b", "undo:a",
	}, rec.events, "the failed step's partial token is compensated first, then completed steps LIFO")
}

func TestExecutorStopsAtFirstFailure(t *testing.T) {
	rec := &recorder{}
	cause := errors.New("step a failed")
	err := testExecutor().Run(context.Background(), "t",
		rec.step("a", cause, nil),
		rec.step("b", nil, nil),
	)

	require.ErrorIs(t, err, cause)
	assert.NotContains(t, rec.events, "run:b")
}

func TestExecutorReturnsOriginalErrorWhenCompensationFails(t *testing.T) {
	rec := &recorder{}
	cause := apperror.New(apperror.Duplicate, "email taken")
	err := testExecutor(WithCompensationRetries(0)).Run(context.Background(), "t",
		rec.step("a", nil, errors.New("undo a broke")),
		rec.step("b", cause, nil),
	)

	require.Error(t, err)
	var sagaErr *Error
	require.ErrorAs(t, err, &sagaErr)
	assert.ErrorIs(t, sagaErr.Cause, cause)
	assert.ErrorContains(t, sagaErr.Rollback, "compensate a")
	// The caller still sees the original failure's kind.
	assert.Equal(t, apperror.Duplicate, apperror.KindOf(err))
}

func TestExecutorCompensationFailureDoesNotSkipOtherSteps(t *testing.T) {
	rec := &recorder{}
	err := testExecutor(WithCompensationRetries(0)).Run(context.Background(), "t",
		rec.step("a", nil, nil),
		rec.step("b", nil, errors.New("undo b broke")),
		rec.step("c", errors.New("boom"), nil),
	)

	require.Error(t, err)
	assert.Equal(t, []string{
		"run:a", "run:b", "run:c",
		"undo:c", "undo:b", "undo:a",
	}, rec.events)
}

func TestExecutorStepTimeoutTriggersRollback(t *testing.T) {
	rec := &recorder{}
	hung := New("hung",
		func(ctx context.Context) (string, error) {
			rec.events = append(rec.events, "run:hung")
			<-ctx.Done()
			return "", ctx.Err()
		},
		func(ctx context.Context, token string) error {
			rec.events = append(rec.events, "undo:hung")
			return nil
		},
	)

	start := time.Now()
	err := testExecutor(WithStepTimeout(20 * time.Millisecond)).Run(context.Background(), "t",
		rec.step("a", nil, nil),
		hung,
	)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, apperror.Unavailable, apperror.KindOf(err))
	assert.Equal(t, []string{"run:a", "run:hung", "undo:hung", "undo:a"}, rec.events)
}

func TestExecutorRetriesFailedCompensation(t *testing.T) {
	attempts := 0
	flaky := New("flaky",
		func(ctx context.Context) (string, error) { return "tok", nil },
		func(ctx context.Context, token string) error {
			attempts++
			if attempts < 2 {
				return errors.New("transient")
			}
			return nil
		},
	)

	err := testExecutor(WithCompensationRetries(3)).Run(context.Background(), "t",
		flaky,
		New("fail",
			func(ctx context.Context) (string, error) { return "", errors.New("boom") },
			func(ctx context.Context, token string) error { return nil },
		),
	)

	require.Error(t, err)
	var sagaErr *Error
	assert.False(t, errors.As(err, &sagaErr), "rollback succeeded on retry, only the cause is returned")
	assert.Equal(t, 2, attempts)
}

func TestExecutorRollbackRunsWhenCallerContextCancelled(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())

	failing := New("fail",
		func(stepCtx context.Context) (string, error) {
			rec.events = append(rec.events, "run:fail")
			cancel()
			return "", errors.New("boom")
		},
		func(stepCtx context.Context, token string) error {
			rec.events = append(rec.events, "undo:fail")
			return stepCtx.Err()
		},
	)

	err := testExecutor().Run(ctx, "t", rec.step("a", nil, nil), failing)
	require.Error(t, err)
	var sagaErr *Error
	assert.False(t, errors.As(err, &sagaErr), "compensation must not inherit the dead caller context")
	assert.Equal(t, []string{"run:a", "run:fail", "undo:fail", "undo:a"}, rec.events)
}
