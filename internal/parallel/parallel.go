// Package parallel runs independent per-item work on a bounded pool of
// goroutines.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Upper bound on concurrently running items.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// For calls f(ctx, i) for i in [0, n). When parallelism is disabled the
// calls run in order on the calling goroutine. The first error cancels the
// context handed to the remaining calls and is returned.
func For(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.NumWorkers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx, i)
		})
	}
	return g.Wait()
}

// Map is For with one result per item, returned in index order.
func Map[T any](ctx context.Context, n int, f func(ctx context.Context, i int) (T, error), cfg Config) ([]T, error) {
	out := make([]T, n)
	err := For(ctx, n, func(ctx context.Context, i int) error {
		v, err := f(ctx, i)
		if err != nil {
			return err
		}
		out[i] = v
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return out, nil
}
