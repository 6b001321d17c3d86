package engine

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Executor runs n independent units of work, indexed [0, n), invoking compute for every index
// exactly once and returning once all have completed (or ctx is cancelled).
type Executor interface {
	Run(ctx context.Context, n int, compute func(i int)) error
}

// Sequential runs every index on the calling goroutine in ascending order, the order the
// interaction kernel contract requires for reproducible accumulation.
type Sequential struct{}

// Run implements Executor.
func (Sequential) Run(ctx context.Context, n int, compute func(i int)) error {
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		compute(i)
	}
	return nil
}

// WorkStealing spreads the n indices across Workers goroutines, each claiming the next unclaimed
// index off a shared atomic counter instead of owning a static contiguous chunk. Algorithms whose
// per-index cost varies a lot (Barnes-Hut: tree depth differs wildly by position) keep every
// worker busy this way instead of some finishing early and idling, which a fixed chunk split
// cannot avoid.
type WorkStealing struct {
	Workers int
}

// Run implements Executor.
func (w WorkStealing) Run(ctx context.Context, n int, compute func(i int)) error {
	if n == 0 {
		return nil
	}

	workers := w.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	var next atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for wk := 0; wk < workers; wk++ {
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				i := next.Add(1) - 1
				if i >= int64(n) {
					return nil
				}
				compute(int(i))
			}
		})
	}
	return g.Wait()
}
