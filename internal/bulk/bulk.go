// Package bulk runs large sets of independent remote operations under a
// bounded concurrency limit. Every item is attempted regardless of other
// items failing; the per-item outcomes are collected and returned together.
package bulk

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result is the outcome of one item's operation.
type Result[T any] struct {
	Item T
	Err  error
}

// RunAll applies op to every item with at most concurrency operations in
// flight. It returns one result per item, in input order, once all items
// have completed. Results are never aborted early: a failing item only marks
// its own result.
func RunAll[T any](ctx context.Context, items []T, concurrency int64, op func(context.Context, T) error) []Result[T] {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]Result[T], len(items))
	gate := semaphore.NewWeighted(concurrency)

	var wg sync.WaitGroup
	for i, item := range items {
		results[i].Item = item

		if err := gate.Acquire(ctx, 1); err != nil {
			// Context cancelled, mark the remaining items without running them
			results[i].Err = err
			continue
		}

		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			defer gate.Release(1)
			results[i].Err = op(ctx, item)
		}(i, item)
	}

	wg.Wait()
	return results
}

// FailureCount counts the items whose operation returned an error.
func FailureCount[T any](results []Result[T]) int {
	count := 0
	for _, result := range results {
		if result.Err != nil {
			count++
		}
	}
	return count
}
