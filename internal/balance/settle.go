package balance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result is the settled outcome of one task run by Settle.
type Result[T any] struct {
	Value T
	Err   error
}

// Settle runs task for every item concurrently and waits for all of them,
// whatever their outcome. A failing task never cancels its siblings. Panics
// inside a task are recovered and reported as that task's error. limit caps
// the number of tasks in flight; limit <= 0 means unbounded.
func Settle[In, Out any](
	ctx context.Context,
	items []In,
	limit int,
	task func(ctx context.Context, item In) (Out, error),
) []Result[Out] {
	results := make([]Result[Out], len(items))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result[Out]{Err: fmt.Errorf("task panicked: %v", r)}
				}
			}()

			value, err := task(ctx, item)
			results[i] = Result[Out]{Value: value, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Successes returns the values of the results that did not fail.
func Successes[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		out = append(out, r.Value)
	}
	return out
}
