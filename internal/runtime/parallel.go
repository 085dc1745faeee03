package runtime

import (
	"context"
	goruntime "runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vk/exrun/internal/ctxlog"
)

// ParallelLoader loads file lists concurrently through an underlying
// single-file loader. The caller blocks until the whole list has completed
// or failed.
type ParallelLoader struct {
	// Load loads one file; typically the engine's LoadFile.
	Load func(ctx context.Context, path string) error
	// Limit caps concurrent loads. Zero means one worker per CPU.
	Limit int
}

// LoadFiles loads every path, at most Limit at a time, and returns the
// first failure after the remaining in-flight loads settle.
func (p *ParallelLoader) LoadFiles(ctx context.Context, paths []string) error {
	logger := ctxlog.FromContext(ctx)
	limit := p.Limit
	if limit <= 0 {
		limit = goruntime.NumCPU()
	}
	logger.Debug("Loading files concurrently.", "count", len(paths), "limit", limit)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return p.Load(ctx, path)
		})
	}
	return g.Wait()
}
