package bulk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllReturnsOneResultPerItem(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	results := RunAll(context.Background(), items, 2, func(ctx context.Context, item int) error {
		return nil
	})

	require.Len(t, results, len(items))
	for i, result := range results {
		assert.Equal(t, items[i], result.Item)
		assert.NoError(t, result.Err)
	}
}

func TestRunAllCollectsFailuresWithoutAborting(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	failing := errors.New("remote rejected")

	results := RunAll(context.Background(), items, 2, func(ctx context.Context, item string) error {
		if item == "b" || item == "d" {
			return failing
		}
		return nil
	})

	require.Len(t, results, 4)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, failing)
	assert.NoError(t, results[2].Err)
	assert.ErrorIs(t, results[3].Err, failing)
	assert.Equal(t, 2, FailureCount(results))
}

func TestRunAllNeverExceedsConcurrencyLimit(t *testing.T) {
	const limit = 3

	var mutex sync.Mutex
	inFlight := 0
	maxInFlight := 0

	items := make([]int, 40)
	for i := range items {
		items[i] = i
	}

	results := RunAll(context.Background(), items, limit, func(ctx context.Context, item int) error {
		mutex.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mutex.Unlock()

		time.Sleep(5 * time.Millisecond)

		mutex.Lock()
		inFlight--
		mutex.Unlock()
		return nil
	})

	require.Len(t, results, len(items))
	assert.LessOrEqual(t, maxInFlight, limit)
	assert.Greater(t, maxInFlight, 0)
}

func TestRunAllWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := RunAll(ctx, []int{1, 2, 3}, 1, func(ctx context.Context, item int) error {
		return nil
	})

	// Every item still gets a result, the unrun ones carry the context error
	require.Len(t, results, 3)
	for _, result := range results {
		assert.Error(t, result.Err)
	}
}

func TestRunAllEmptyInput(t *testing.T) {
	results := RunAll(context.Background(), nil, 4, func(ctx context.Context, item int) error {
		return nil
	})
	assert.Empty(t, results)
}

func TestRunAllClampsConcurrency(t *testing.T) {
	results := RunAll(context.Background(), []int{1, 2}, 0, func(ctx context.Context, item int) error {
		return nil
	})
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
}
