package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// DefaultOracleConcurrency bounds oracle calls in flight per request.
const DefaultOracleConcurrency = 10

// fanOut calls fn for every index in [0,n) with at most size calls running
// at once, and returns when all have finished. Results are written by fn into
// caller-owned slots, so positional correspondence is kept.
func fanOut(ctx context.Context, n, size int, fn func(ctx context.Context, i int)) error {
	if n == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultOracleConcurrency
	}
	if size > n {
		size = n
	}

	pool, err := ants.NewPool(size)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			fn(ctx, i)
		}); err != nil {
			wg.Done()
			// Pool refused the task; run it on this goroutine instead.
			fn(ctx, i)
		}
	}
	wg.Wait()
	return nil
}
