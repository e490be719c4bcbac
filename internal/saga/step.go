// Package saga provides a small step + compensate engine for multi-service
// operations that have no shared transaction boundary. Each step performs one
// forward action and records a compensation token; on any failure the
// executor undoes completed work in reverse order using those tokens.
package saga

import (
	"context"
	"sync"
)

// Step is one unit of work with an inverse. Run performs the forward action.
// Compensate undoes whatever Run durably created, using only state the step
// itself recorded; it must be safe to call twice and safe to call when Run
// never completed.
type Step interface {
	Name() string
	Run(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// RunFunc performs a step's forward action and returns the token its undo
// needs. A step that fails mid-way may return a non-zero token alongside the
// error; the executor will still compensate it, so partially created state
// is cleaned up.
type RunFunc[T any] func(ctx context.Context) (T, error)

// UndoFunc reverses a step given its recorded token. It must treat a
// zero-value token as "nothing to undo" and a missing target as success.
type UndoFunc[T any] func(ctx context.Context, token T) error

type funcStep[T any] struct {
	name string
	run  RunFunc[T]
	undo UndoFunc[T]

	mu          sync.Mutex
	token       T
	compensated bool
}

// New builds a Step from a run/undo pair. The token returned by run is held
// by the step and handed back to undo; it never leaks to other steps.
func New[T any](name string, run RunFunc[T], undo UndoFunc[T]) Step {
	return &funcStep[T]{name: name, run: run, undo: undo}
}

func (s *funcStep[T]) Name() string { return s.name }

func (s *funcStep[T]) Run(ctx context.Context) error {
	token, err := s.run(ctx)
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return err
}

func (s *funcStep[T]) Compensate(ctx context.Context) error {
	s.mu.Lock()
	if s.compensated {
		s.mu.Unlock()
		return nil
	}
	token := s.token
	s.mu.Unlock()

	if err := s.undo(ctx, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.compensated = true
	s.mu.Unlock()
	return nil
}
