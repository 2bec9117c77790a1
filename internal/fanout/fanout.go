package fanout

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one task.
type Result[T any] struct {
	// Index is the position of the task's input in the input slice.
	Index int
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Group runs fan-outs with a shared concurrency limit and logger.
// The zero value is not usable; create one with New.
type Group struct {
	// limit is the maximum number of tasks in flight. Zero or negative
	// means every task starts immediately.
	limit  int
	logger *slog.Logger
	name   string
}

// Option configures a Group.
type Option func(*Group)

// WithLimit bounds the number of concurrently running tasks.
// A non-positive n removes the bound.
func WithLimit(n int) Option {
	return func(g *Group) {
		g.limit = n
	}
}

// WithLogger sets the logger used for fan-out tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Group) {
		g.logger = logger
	}
}

// WithName labels log lines emitted by the group.
func WithName(name string) Option {
	return func(g *Group) {
		g.name = name
	}
}

// New creates a Group. By default tasks are unbounded.
func New(opts ...Option) *Group {
	g := &Group{name: "fanout"}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Map calls fn for every input and waits for all calls to return.
// results[i] always corresponds to inputs[i].
//
// Map itself never fails. Context cancellation is left to fn, which
// receives ctx unchanged.
func Map[In, Out any](ctx context.Context, g *Group, inputs []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(inputs))
	if len(inputs) == 0 {
		return results
	}

	start := time.Now()

	// errgroup without WithContext: a failed task must not cancel the rest.
	var eg errgroup.Group
	if g.limit > 0 {
		eg.SetLimit(g.limit)
	}

	for i, in := range inputs {
		eg.Go(func() error {
			out, err := fn(ctx, in)
			// Each goroutine owns exactly one slot.
			results[i] = Result[Out]{Index: i, Value: out, Err: err}
			return nil
		})
	}
	_ = eg.Wait() //nolint:errcheck // tasks never return errors to the group

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	g.logger.Debug("fan-out complete",
		"group", g.name,
		"tasks", len(inputs),
		"failed", failed,
		"elapsed", time.Since(start),
	)

	return results
}

// Values returns the values of the successful results, in input order.
func Values[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Value)
		}
	}
	return out
}
