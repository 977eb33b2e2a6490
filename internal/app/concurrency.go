package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// PartialResult holds a result or an error for partial success
// patterns: the batch keeps rendering past individual failures.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit executes fns with at most limit running
// simultaneously and collects every result, even on partial failure.
// Results are positionally aligned with fns.
func ParallelPartialLimit[T any](
	ctx context.Context,
	limit int,
	fns ...func(context.Context) (T, error),
) []PartialResult[T] {
	results := make([]PartialResult[T], len(fns))
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup

	for i, fn := range fns {
		wg.Go(func() {
			sem <- struct{}{}

			defer func() { <-sem }()

			value, err := fn(ctx)
			results[i] = PartialResult[T]{Value: value, Err: err}
		})
	}

	wg.Wait()

	return results
}

// ParallelLimit executes fns with bounded concurrency and cancels the
// remainder on first error. Used when the batch is configured to halt
// rather than skip.
func ParallelLimit[T any](
	ctx context.Context,
	limit int,
	fns ...func(context.Context) (T, error),
) ([]T, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	results := make([]T, len(fns))

	for i, fn := range fns {
		g.Go(func() error {
			result, err := fn(ctx)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	err := g.Wait()
	if err != nil {
		return nil, fmt.Errorf("parallel execution failed: %w", err)
	}

	return results, nil
}
