package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PartialResult is the outcome of one function run by ParallelPartialLimit.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit runs fns with at most limit in flight. Every
// function gets its own result slot in the order of fns, so one failure
// never hides the others. Functions not yet started when ctx ends report
// ctx.Err() without running.
func ParallelPartialLimit[T any](ctx context.Context, limit int, fns ...func(context.Context) (T, error)) []PartialResult[T] {
	results := make([]PartialResult[T], len(fns))

	var g errgroup.Group
	g.SetLimit(max(limit, 1))

	for i, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			results[i].Value, results[i].Err = fn(ctx)

			return nil
		})
	}

	_ = g.Wait()

	return results
}
