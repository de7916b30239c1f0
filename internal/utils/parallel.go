package utils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of a parallel fetch. It writes its result through a
// captured variable.
type Task func(ctx context.Context) error

// RunParallel runs every task concurrently and returns the first error. The
// context handed to tasks is canceled as soon as one of them fails.
func RunParallel(ctx context.Context, tasks ...Task) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error { return task(gctx) })
	}
	return g.Wait()
}
