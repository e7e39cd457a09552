package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Workers struct {
	workers []Worker
}

// New aggregates workers.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run runs every worker concurrently. The first failure stops the others
// and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error { return worker.Run(gCtx) })
	}
	return g.Wait()
}
